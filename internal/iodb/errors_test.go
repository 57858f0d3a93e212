package iodb

import (
	"errors"
	"testing"

	"github.com/ccslim/ccslim/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveErrors(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"open", ArchiveOpenError("a.sqlite", cause), errcode.ArchiveOpenError, 1},
		{"schema", ArchiveSchemaError("a.sqlite", cause), errcode.ArchiveSchemaError, 1},
		{"write", ArchiveWriteError("points", cause), errcode.ArchiveWriteError, 1},
		{"query", ArchiveQueryError("points", cause), errcode.ArchiveQueryError, 1},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(v.err, &gnErr))
			assert.Equal(t, v.code, gnErr.Code)
			assert.Len(t, gnErr.Vars, v.vars)
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), "TestArchiveErrors")
		})
	}

	var gnErr *gn.Error
	require.True(t, errors.As(NotOpenError(), &gnErr))
	assert.Equal(t, errcode.ArchiveNotOpenError, gnErr.Code)
}

package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/errcode"
)

func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestCreateSchemaError_Structure(t *testing.T) {
	originalErr := errors.New("create failed")
	err := CreateSchemaError(originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SchemaCreateError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestRepairSchemaError_Structure(t *testing.T) {
	originalErr := errors.New("repair failed")
	err := RepairSchemaError([]string{"world_cities"}, originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SchemaRepairError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 1)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

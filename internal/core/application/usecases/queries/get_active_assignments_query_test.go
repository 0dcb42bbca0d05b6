package queries_test

import (
	"testing"

	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveAssignmentsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetActiveAssignmentsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetActiveAssignmentsQuery_InvalidPersonID(t *testing.T) {
	_, err := queries.NewGetActiveAssignmentsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetActiveAssignmentsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveAssignmentsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveAssignmentsQueryIsNotConstructed)
}

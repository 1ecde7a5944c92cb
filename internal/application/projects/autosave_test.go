package projects

import (
	"context"
	"testing"
	"time"

	"shoredock-backend/internal/application/versions"
	"shoredock-backend/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutosaver_CollapsesRapidWrites(t *testing.T) {
	svc, db := setupProjectsTest(t)
	vers := &versions.Service{DB: db}
	p, err := svc.Create(context.Background(), "A")
	require.NoError(t, err)

	saver := NewAutosaver(svc, vers, 30*time.Millisecond)
	for i := 0; i < 5; i++ {
		p.Details.Description = "revision"
		saver.Queue(p)
	}

	// Quiet period elapses: exactly one auto version for the burst.
	assert.Eventually(t, func() bool {
		list, err := vers.ListVersions(context.Background(), p.ProjectID)
		return err == nil && len(list) == 1
	}, 2*time.Second, 10*time.Millisecond)

	list, err := vers.ListVersions(context.Background(), p.ProjectID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, constants.TriggerAuto, list[0].Trigger)
}

func TestAutosaver_FlushWritesImmediately(t *testing.T) {
	svc, db := setupProjectsTest(t)
	vers := &versions.Service{DB: db}
	p, err := svc.Create(context.Background(), "A")
	require.NoError(t, err)

	saver := NewAutosaver(svc, vers, time.Hour)
	p.Name = "flushed"
	saver.Queue(p)
	saver.Flush()

	reloaded, err := svc.Get(context.Background(), p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "flushed", reloaded.Name)

	list, err := vers.ListVersions(context.Background(), p.ProjectID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

package unitofwork_test

import (
	"context"
	"testing"
	"time"

	"cassie-be/internal/entity"
	"cassie-be/internal/pkg/testutil"
	"cassie-be/internal/repository/specification"
	"cassie-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsBoth(t *testing.T) {
	db := testutil.NewTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	now := time.Now().UTC()
	require.NoError(t, uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{
		{SiteId: "s", Role: entity.ChatRoleUser, Content: "q", CreatedAt: now},
		{SiteId: "s", Role: entity.ChatRoleAssistant, Content: "a", CreatedAt: now.Add(time.Microsecond)},
	}))
	require.NoError(t, uow.Commit())

	count, err := factory.NewUnitOfWork(ctx).ChatMessageRepository().Count(ctx, specification.BySiteID{SiteID: "s"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	db := testutil.NewTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		SiteId: "s", Role: entity.ChatRoleUser, Content: "q", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).ChatMessageRepository().Count(ctx, specification.BySiteID{SiteID: "s"})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_StateErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	assert.ErrorIs(t, uow.Commit(), unitofwork.ErrNoTransaction)
	assert.NoError(t, uow.Rollback())

	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.Begin(ctx), unitofwork.ErrTxAlreadyStarted)
	require.NoError(t, uow.Commit())
}

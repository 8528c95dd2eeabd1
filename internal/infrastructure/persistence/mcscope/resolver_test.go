package mcscope

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/domain/shared"
)

func adminCaller(companyID uuid.UUID) identity.CallerContext {
	return identity.CallerContext{
		UserID:    uuid.New(),
		CompanyID: companyID,
		Role:      identity.RoleAdmin,
	}
}

func dispatcherCaller(companyID uuid.UUID, grants ...uuid.UUID) identity.CallerContext {
	return identity.CallerContext{
		UserID:    uuid.New(),
		CompanyID: companyID,
		Role:      identity.RoleDispatcher,
		McAccess:  grants,
	}
}

func TestResolve(t *testing.T) {
	companyID := uuid.New()
	mc1 := uuid.New()
	mc2 := uuid.New()

	t.Run("elevated caller without selection sees whole company", func(t *testing.T) {
		scope, err := Resolve(adminCaller(companyID), nil)
		require.NoError(t, err)

		assert.Equal(t, companyID, scope.CompanyID)
		assert.True(t, scope.Unrestricted())
		assert.False(t, scope.Empty())
		assert.True(t, scope.AllowsMc(mc1))
	})

	t.Run("elevated caller narrows to explicit selection", func(t *testing.T) {
		scope, err := Resolve(adminCaller(companyID), &mc1)
		require.NoError(t, err)

		assert.False(t, scope.Unrestricted())
		assert.Equal(t, []uuid.UUID{mc1}, scope.McNumberIDs)
		assert.True(t, scope.AllowsMc(mc1))
		assert.False(t, scope.AllowsMc(mc2))
	})

	t.Run("non-elevated caller scoped to grant set", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID, mc1, mc2), nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []uuid.UUID{mc1, mc2}, scope.McNumberIDs)
		assert.True(t, scope.AllowsMc(mc1))
		assert.False(t, scope.AllowsMc(uuid.New()))
	})

	t.Run("non-elevated caller with empty grant set gets empty scope", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID), nil)
		require.NoError(t, err)

		assert.True(t, scope.Empty())
		assert.False(t, scope.AllowsMc(mc1))
	})

	t.Run("selection within grant set narrows the scope", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID, mc1, mc2), &mc2)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{mc2}, scope.McNumberIDs)
	})

	t.Run("selection outside grant set is forbidden", func(t *testing.T) {
		outside := uuid.New()
		_, err := Resolve(dispatcherCaller(companyID, mc1), &outside)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("missing company fails closed", func(t *testing.T) {
		_, err := Resolve(identity.CallerContext{Role: identity.RoleAdmin}, nil)
		assert.Error(t, err)
	})

	t.Run("nil-uuid selection is treated as no selection", func(t *testing.T) {
		nilID := uuid.Nil
		scope, err := Resolve(dispatcherCaller(companyID, mc1), &nilID)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{mc1}, scope.McNumberIDs)
	})
}

type scopedLoad struct {
	ID         string `gorm:"primaryKey"`
	CompanyID  string
	McNumberID string
}

func newScopeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&scopedLoad{}))
	return db
}

func TestScope_Apply(t *testing.T) {
	companyID := uuid.New()
	otherCompany := uuid.New()
	mc1 := uuid.New()
	mc2 := uuid.New()

	db := newScopeTestDB(t)
	rows := []scopedLoad{
		{ID: "a", CompanyID: companyID.String(), McNumberID: mc1.String()},
		{ID: "b", CompanyID: companyID.String(), McNumberID: mc2.String()},
		{ID: "c", CompanyID: otherCompany.String(), McNumberID: mc1.String()},
	}
	require.NoError(t, db.Create(&rows).Error)

	t.Run("unrestricted scope filters by company only", func(t *testing.T) {
		scope, err := Resolve(adminCaller(companyID), nil)
		require.NoError(t, err)

		var got []scopedLoad
		require.NoError(t, db.Scopes(scope.ApplyToQuery()).Find(&got).Error)
		assert.Len(t, got, 2)
	})

	t.Run("granted scope filters by MC set", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID, mc1), nil)
		require.NoError(t, err)

		var got []scopedLoad
		require.NoError(t, db.Scopes(scope.ApplyToQuery()).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("empty scope matches nothing", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID), nil)
		require.NoError(t, err)

		var got []scopedLoad
		require.NoError(t, db.Scopes(scope.ApplyToQuery()).Find(&got).Error)
		assert.Empty(t, got)
	})

	t.Run("company mismatch excludes rows even for a granted MC", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(otherCompany, mc1), nil)
		require.NoError(t, err)

		var got []scopedLoad
		require.NoError(t, db.Scopes(scope.ApplyToQuery()).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})

	t.Run("CompanyOnly ignores MC restriction", func(t *testing.T) {
		scope, err := Resolve(dispatcherCaller(companyID, mc1), nil)
		require.NoError(t, err)

		var got []scopedLoad
		require.NoError(t, scope.CompanyOnly(db.Model(&scopedLoad{})).Find(&got).Error)
		assert.Len(t, got, 2)
	})
}

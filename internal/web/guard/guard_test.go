package guard

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

type guardFixture struct {
	db       *gorm.DB
	app      *fiber.App
	signer   *token.Signer
	resolver *auth.Resolver
	viewer   models.Role
	manager  models.Role
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
	))

	signer, err := token.NewSigner("unit-test-secret", time.Hour)
	require.NoError(t, err)

	verifier := auth.NewVerifier(db, signer)
	resolver := auth.NewResolver(db)

	viewer := models.Role{
		Name:        "viewer",
		Level:       3,
		Permissions: models.PermissionMap{"news:read": true},
	}
	require.NoError(t, db.Create(&viewer).Error)

	manager := models.Role{
		Name:        "manager",
		Level:       1,
		ParentID:    &viewer.ID,
		Permissions: models.PermissionMap{"news:create": true},
	}
	require.NoError(t, db.Create(&manager).Error)

	app := fiber.New()
	authenticate := authn.Middleware(verifier, nil, "")

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app.Get("/manager-only", authenticate, RequireRoles("manager", "admin"), ok)
	app.Get("/news-read", authenticate, RequirePermissions(resolver, auth.PermNewsRead), ok)
	app.Get("/news-create", authenticate, RequirePermissions(resolver, auth.PermNewsCreate), ok)

	return &guardFixture{
		db:       db,
		app:      app,
		signer:   signer,
		resolver: resolver,
		viewer:   viewer,
		manager:  manager,
	}
}

func (f *guardFixture) seedUser(t *testing.T, email string, roles ...models.Role) (models.User, string) {
	t.Helper()

	user := models.User{
		PublicID:     email + "-public-id",
		Email:        email,
		PasswordHash: models.HashPassword("secret-password"),
		Active:       true,
	}
	require.NoError(t, f.db.Create(&user).Error)

	names := make([]string, 0, len(roles))

	for _, role := range roles {
		require.NoError(t, f.db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)
		names = append(names, role.Name)
	}

	signed, err := f.signer.Issue(user.ID, user.Email, names)
	require.NoError(t, err)

	return user, signed
}

func (f *guardFixture) get(t *testing.T, path, bearer string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestGuardsRejectWithoutToken(t *testing.T) {
	f := newGuardFixture(t)

	status, _ := f.get(t, "/news-read", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireRoles(t *testing.T) {
	f := newGuardFixture(t)

	_, viewerToken := f.seedUser(t, "viewer@example.com", f.viewer)
	_, managerToken := f.seedUser(t, "manager@example.com", f.manager)
	_, rolelessToken := f.seedUser(t, "roleless@example.com")

	status, body := f.get(t, "/manager-only", viewerToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "manager, admin")

	status, _ = f.get(t, "/manager-only", managerToken)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = f.get(t, "/manager-only", rolelessToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "does not have any roles")
}

func TestRequirePermissions(t *testing.T) {
	f := newGuardFixture(t)

	_, viewerToken := f.seedUser(t, "viewer@example.com", f.viewer)
	_, managerToken := f.seedUser(t, "manager@example.com", f.manager)

	// viewer holds news:read but not news:create
	status, _ := f.get(t, "/news-read", viewerToken)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := f.get(t, "/news-create", viewerToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, auth.PermNewsCreate)

	// manager inherits news:read through the parent chain
	status, _ = f.get(t, "/news-read", managerToken)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = f.get(t, "/news-create", managerToken)
	assert.Equal(t, fiber.StatusOK, status)
}

// Permission checks hit the database at request time, so a role granted
// after login takes effect with the old token. Role-name checks read the
// token and only change on re-login.
func TestPermissionChangeTakesEffectWithoutRelogin(t *testing.T) {
	f := newGuardFixture(t)

	user, viewerToken := f.seedUser(t, "promoted@example.com", f.viewer)

	status, _ := f.get(t, "/news-create", viewerToken)
	require.Equal(t, fiber.StatusForbidden, status)

	require.NoError(t, f.db.Create(&models.UserRole{UserID: user.ID, RoleID: f.manager.ID}).Error)

	status, _ = f.get(t, "/news-create", viewerToken)
	assert.Equal(t, fiber.StatusOK, status)

	// the token still asserts only "viewer"
	status, _ = f.get(t, "/manager-only", viewerToken)
	assert.Equal(t, fiber.StatusForbidden, status)
}

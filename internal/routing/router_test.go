package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"commerce-core/internal/managers"
	"commerce-core/internal/managers/mocks"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

type routerTestEnv struct {
	pool       pgxmock.PgxPoolIface
	jwtMgr     managers.JWTMgr
	sessionMgr *mocks.InMemorySessionManager
	mailMgr    *mocks.MockMailManager
	mediaMgr   *mocks.MockMediaManager
	server     *httptest.Server
}

func setupRouterTest(t *testing.T) *routerTestEnv {
	t.Setenv("ENVIRONMENT", "test")

	poolMock, err := pgxmock.NewPool()
	if err != nil {
		log.Errorf("Error creating mock database pool: %v", err)
	}

	databaseMgrMock := &mocks.MockDatabaseManager{}
	databaseMgrMock.On("GetPool").Return(poolMock)

	jwtMgr := managers.NewJWTManager(
		[]byte("access-secret"),
		[]byte("refresh-secret"),
		[]byte("activation-secret"),
		2*time.Hour,
		72*time.Hour,
		5*time.Minute,
	)

	sessionMgr := mocks.NewInMemorySessionManager()

	mailMgrMock := &mocks.MockMailManager{}
	mailMgrMock.On("SendActivationMail", mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	mailMgrMock.On("SendResetMail", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	mediaMgrMock := &mocks.MockMediaManager{}
	mediaMgrMock.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return("asset-id", "https://cdn.example.com/asset.png", nil)
	mediaMgrMock.On("Destroy", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	router := InitRouter(databaseMgrMock, jwtMgr, mailMgrMock, sessionMgr, mediaMgrMock)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &routerTestEnv{
		pool:       poolMock,
		jwtMgr:     jwtMgr,
		sessionMgr: sessionMgr,
		mailMgr:    mailMgrMock,
		mediaMgr:   mediaMgrMock,
		server:     server,
	}
}

// loginAs seeds the session cache and returns a valid access token, which
// is what a real login leaves behind.
func (env *routerTestEnv) loginAs(t *testing.T, user *schemas.User) string {
	require.NoError(t, env.sessionMgr.Put(context.Background(), user, managers.SessionTTL))
	accessToken, _, err := env.jwtMgr.GenerateTokenPair(user.ID.String())
	require.NoError(t, err)
	return accessToken
}

func testUser(role string) *schemas.User {
	return &schemas.User{
		ID:       uuid.New(),
		Username: "testUser",
		Email:    "test@example.com",
		Phone:    "0123456789",
		Role:     role,
		Verified: true,
	}
}

func TestRegistration(t *testing.T) {
	payload := map[string]interface{}{
		"username": "testUser",
		"email":    "test@example.com",
		"password": "Valid#Pass1",
	}

	t.Run("Valid", func(t *testing.T) {
		env := setupRouterTest(t)

		env.pool.ExpectQuery("SELECT EXISTS").WithArgs("testUser").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		env.pool.ExpectQuery("SELECT EXISTS").WithArgs("test@example.com").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/register").WithJSON(payload).Expect().Status(http.StatusOK)
		response.JSON().Object().HasValue("success", true).Value("activationToken").String().NotEmpty()

		env.mailMgr.AssertCalled(t, "SendActivationMail", "test@example.com", "testUser", mock.AnythingOfType("string"))

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		env := setupRouterTest(t)

		weak := map[string]interface{}{
			"username": "testUser",
			"email":    "test@example.com",
			"password": "weak",
		}

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/register").WithJSON(weak).Expect().Status(http.StatusBadRequest)
		response.JSON().Object().HasValue("code", "ERR-003")
	})

	t.Run("MissingFields", func(t *testing.T) {
		env := setupRouterTest(t)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/register").WithJSON(map[string]interface{}{}).Expect().Status(http.StatusUnprocessableEntity)
		response.JSON().Object().HasValue("code", "ERR-002")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		env := setupRouterTest(t)

		env.pool.ExpectQuery("SELECT EXISTS").WithArgs("testUser").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/register").WithJSON(payload).Expect().Status(http.StatusConflict)
		response.JSON().Object().HasValue("code", "ERR-004")

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestActivation(t *testing.T) {
	pending := &schemas.PendingUser{
		Username: "testUser",
		Email:    "test@example.com",
		Password: "Valid#Pass1",
	}

	t.Run("Valid", func(t *testing.T) {
		env := setupRouterTest(t)

		ticket, code, err := env.jwtMgr.GenerateActivationTicket(pending)
		require.NoError(t, err)

		env.pool.ExpectExec("INSERT INTO users").WithArgs(
			pgxmock.AnyArg(), "testUser", "test@example.com", pgxmock.AnyArg(), "", "user", true, "", "",
		).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		env.pool.ExpectExec("INSERT INTO notifications").WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "unread",
		).WillReturnResult(pgxmock.NewResult("INSERT", 1))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/activate").WithJSON(map[string]interface{}{
			"activationToken": ticket,
			"activationCode":  code,
		}).Expect().Status(http.StatusCreated)
		response.JSON().Object().HasValue("success", true)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		env := setupRouterTest(t)

		ticket, code, err := env.jwtMgr.GenerateActivationTicket(pending)
		require.NoError(t, err)

		wrongCode := "1000"
		if wrongCode == code {
			wrongCode = "1001"
		}

		// No database expectations: a wrong code must not create a row.
		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/activate").WithJSON(map[string]interface{}{
			"activationToken": ticket,
			"activationCode":  wrongCode,
		}).Expect().Status(http.StatusBadRequest)
		response.JSON().Object().HasValue("code", "ERR-008")

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("GarbageTicket", func(t *testing.T) {
		env := setupRouterTest(t)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/activate").WithJSON(map[string]interface{}{
			"activationToken": "nonsense",
			"activationCode":  "1234",
		}).Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-007")
	})
}

func TestLogin(t *testing.T) {
	user := testUser("user")
	hash, _ := bcrypt.GenerateFromPassword([]byte("Valid#Pass1"), bcrypt.DefaultCost)

	userRow := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"user_id", "username", "email", "password", "phone", "user_role", "verified", "avatar_public_id", "avatar_url"}).
			AddRow(user.ID, user.Username, user.Email, string(hash), user.Phone, user.Role, user.Verified, "", "")
	}

	t.Run("Valid", func(t *testing.T) {
		env := setupRouterTest(t)

		env.pool.ExpectQuery("SELECT user_id").WithArgs(user.Email).WillReturnRows(userRow())

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/login").WithJSON(map[string]interface{}{
			"email":    user.Email,
			"password": "Valid#Pass1",
		}).Expect().Status(http.StatusOK)

		body := response.JSON().Object()
		body.HasValue("success", true)
		body.Value("accessToken").String().NotEmpty()
		body.Value("user").Object().HasValue("username", user.Username)

		response.Cookie(utils.AccessTokenCookie).Value().NotEmpty()
		response.Cookie(utils.RefreshTokenCookie).Value().NotEmpty()

		// Login is what creates the session entry.
		cached, err := env.sessionMgr.Get(context.Background(), user.ID.String())
		require.NoError(t, err)
		require.Equal(t, user.Username, cached.Username)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		env := setupRouterTest(t)

		env.pool.ExpectQuery("SELECT user_id").WithArgs(user.Email).WillReturnRows(userRow())

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/login").WithJSON(map[string]interface{}{
			"email":    user.Email,
			"password": "Wrong#Pass1",
		}).Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-009")
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		env := setupRouterTest(t)

		env.pool.ExpectQuery("SELECT user_id").WithArgs("nobody@example.com").WillReturnError(pgx.ErrNoRows)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.POST("/api/auth/login").WithJSON(map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "Valid#Pass1",
		}).Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-009")
	})
}

func TestConcurrentLogins(t *testing.T) {
	env := setupRouterTest(t)

	userId := uuid.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Valid#Pass1"), bcrypt.DefaultCost)

	userRow := func(username string) *pgxmock.Rows {
		return pgxmock.NewRows([]string{"user_id", "username", "email", "password", "phone", "user_role", "verified", "avatar_public_id", "avatar_url"}).
			AddRow(userId, username, "test@example.com", string(hash), "", "user", true, "", "")
	}

	env.pool.ExpectQuery("SELECT user_id").WithArgs("test@example.com").WillReturnRows(userRow("firstDevice"))
	env.pool.ExpectQuery("SELECT user_id").WithArgs("test@example.com").WillReturnRows(userRow("secondDevice"))

	// One client per device, so each keeps its own cookies.
	login := func() string {
		response := httpexpect.Default(t, env.server.URL).POST("/api/auth/login").WithJSON(map[string]interface{}{
			"email":    "test@example.com",
			"password": "Valid#Pass1",
		}).Expect().Status(http.StatusOK)
		return response.JSON().Object().Value("accessToken").String().Raw()
	}

	firstToken := login()
	secondToken := login()
	expect := httpexpect.Default(t, env.server.URL)

	// The later login overwrites the single cache entry.
	cached, err := env.sessionMgr.Get(context.Background(), userId.String())
	require.NoError(t, err)
	require.Equal(t, "secondDevice", cached.Username)

	// Both tokens stay valid against it, the earlier one now sees the
	// overwritten state.
	response := expect.GET("/api/auth/me").WithCookie(utils.AccessTokenCookie, firstToken).Expect().Status(http.StatusOK)
	response.JSON().Object().Value("user").Object().HasValue("username", "secondDevice")

	response = expect.GET("/api/auth/me").WithCookie(utils.AccessTokenCookie, secondToken).Expect().Status(http.StatusOK)
	response.JSON().Object().Value("user").Object().HasValue("username", "secondDevice")

	if err := env.pool.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestAuthGate(t *testing.T) {
	t.Run("NoCookie", func(t *testing.T) {
		env := setupRouterTest(t)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/auth/me").Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-010")
	})

	t.Run("ValidTokenWithoutSession", func(t *testing.T) {
		env := setupRouterTest(t)

		// A cryptographically valid token alone is not enough: the session
		// cache is the source of truth.
		accessToken, _, err := env.jwtMgr.GenerateTokenPair(uuid.New().String())
		require.NoError(t, err)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/auth/me").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-011")
	})

	t.Run("LoggedIn", func(t *testing.T) {
		env := setupRouterTest(t)

		user := testUser("user")
		accessToken := env.loginAs(t, user)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/auth/me").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)
		response.JSON().Object().Value("user").Object().HasValue("username", user.Username)
	})

	t.Run("LogoutInvalidatesSession", func(t *testing.T) {
		env := setupRouterTest(t)

		user := testUser("user")
		accessToken := env.loginAs(t, user)

		expect := httpexpect.Default(t, env.server.URL)
		expect.POST("/api/auth/logout").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)

		// The token is still within its lifetime, but the session is gone.
		response := expect.GET("/api/auth/me").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusUnauthorized)
		response.JSON().Object().HasValue("code", "ERR-011")
	})
}

func TestRoleGate(t *testing.T) {
	t.Run("UserRoleRejected", func(t *testing.T) {
		env := setupRouterTest(t)

		accessToken := env.loginAs(t, testUser("user"))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/auth/get-users").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusForbidden)
		response.JSON().Object().HasValue("code", "ERR-012")
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		env := setupRouterTest(t)

		admin := testUser("admin")
		accessToken := env.loginAs(t, admin)

		env.pool.ExpectQuery("SELECT user_id").WillReturnRows(
			pgxmock.NewRows([]string{"user_id", "username", "email", "phone", "user_role", "verified", "avatar_public_id", "avatar_url"}).
				AddRow(admin.ID, admin.Username, admin.Email, admin.Phone, admin.Role, admin.Verified, "", ""),
		)

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/auth/get-users").WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)
		response.JSON().Object().Value("users").Array().Length().IsEqual(1)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestOrderSorting(t *testing.T) {
	user := testUser("user")

	orderRow := func(price float64) *pgxmock.Rows {
		return pgxmock.NewRows([]string{"order_id", "ord_status", "user_id", "total_price", "products", "payment_info", "created_at"}).
			AddRow(uuid.New(), "paid", user.ID, price, json.RawMessage(`[]`), json.RawMessage(`{}`), time.Now())
	}

	t.Run("UserOrdersByPriceAsc", func(t *testing.T) {
		env := setupRouterTest(t)
		accessToken := env.loginAs(t, user)

		env.pool.ExpectQuery("ORDER BY total_price ASC").WithArgs(user.ID).WillReturnRows(orderRow(9.99))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/orders/user-orders").
			WithQuery(utils.SortByParamKey, "price").WithQuery(utils.SortParamKey, "asc").
			WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)
		response.JSON().Object().Value("orders").Array().Length().IsEqual(1)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("AllOrdersByPriceDesc", func(t *testing.T) {
		env := setupRouterTest(t)
		accessToken := env.loginAs(t, testUser("admin"))

		env.pool.ExpectQuery("ORDER BY total_price DESC").WillReturnRows(orderRow(19.99))

		expect := httpexpect.Default(t, env.server.URL)
		response := expect.GET("/api/orders/all-orders").
			WithQuery(utils.SortByParamKey, "price").
			WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)
		response.JSON().Object().Value("records").Array().Length().IsEqual(1)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("UnknownSortColumnFallsBack", func(t *testing.T) {
		env := setupRouterTest(t)
		accessToken := env.loginAs(t, user)

		// Anything outside the allow-list sorts by creation time.
		env.pool.ExpectQuery("ORDER BY created_at DESC").WithArgs(user.ID).WillReturnRows(orderRow(4.99))

		expect := httpexpect.Default(t, env.server.URL)
		expect.GET("/api/orders/user-orders").
			WithQuery(utils.SortByParamKey, "password").
			WithCookie(utils.AccessTokenCookie, accessToken).Expect().Status(http.StatusOK)

		if err := env.pool.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})
}

func TestRefreshFlow(t *testing.T) {
	env := setupRouterTest(t)

	user := testUser("user")
	require.NoError(t, env.sessionMgr.Put(context.Background(), user, managers.SessionTTL))
	_, refreshToken, err := env.jwtMgr.GenerateTokenPair(user.ID.String())
	require.NoError(t, err)

	// Only the refresh cookie travels: the middleware has to mint a fresh
	// access token before the auth gate runs.
	expect := httpexpect.Default(t, env.server.URL)
	response := expect.GET("/api/auth/refresh").WithCookie(utils.RefreshTokenCookie, refreshToken).Expect().Status(http.StatusOK)

	body := response.JSON().Object()
	body.HasValue("success", true)
	body.Value("accessToken").String().NotEmpty()
	body.Value("user").Object().HasValue("username", user.Username)

	response.Cookie(utils.AccessTokenCookie).Value().NotEmpty()
	response.Cookie(utils.RefreshTokenCookie).Value().NotEmpty()
}

func TestRouteNotFound(t *testing.T) {
	env := setupRouterTest(t)

	expect := httpexpect.Default(t, env.server.URL)
	response := expect.GET("/api/does-not-exist").Expect().Status(http.StatusNotFound)
	response.JSON().Object().HasValue("code", "ERR-025")
}

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/auth/http/mocks"
)

func setupAuthzRouter(useCase *mocks.MockAuthorizationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthzHandler(useCase, testLogger())

	router := gin.New()
	router.POST("/v1/authz/check", handler.CheckHandler)
	router.GET("/v1/authz/users/:username/permissions", handler.UserPermissionsHandler)
	return router
}

func TestAuthzHandler_CheckHandler(t *testing.T) {
	t.Run("granted decision returns 200", func(t *testing.T) {
		orgID := int64(42)
		useCase := new(mocks.MockAuthorizationUseCase)
		useCase.On("Authorize", mock.Anything, "jane.doe", "vault", "read").
			Return(authDomain.AuthorizationDecision{
				Granted:        true,
				Username:       "jane.doe",
				Resource:       "vault",
				Action:         "read",
				Permissions:    []string{"vault:read"},
				Roles:          []string{"operator"},
				OrganizationID: &orgID,
			})

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodPost, "/v1/authz/check", gin.H{
			"username": "jane.doe",
			"resource": "vault",
			"action":   "read",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, true, response["granted"])
		assert.Equal(t, "jane.doe", response["username"])
		assert.Equal(t, float64(42), response["organization_id"])
	})

	t.Run("denied decision still returns 200", func(t *testing.T) {
		useCase := new(mocks.MockAuthorizationUseCase)
		useCase.On("Authorize", mock.Anything, "jane.doe", "vault", "delete").
			Return(authDomain.AuthorizationDecision{
				Granted:  false,
				Username: "jane.doe",
				Resource: "vault",
				Action:   "delete",
				Reason:   "no permission for vault:delete",
			})

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodPost, "/v1/authz/check", gin.H{
			"username": "jane.doe",
			"resource": "vault",
			"action":   "delete",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, false, response["granted"])
		assert.Equal(t, "no permission for vault:delete", response["reason"])
	})

	t.Run("missing resource maps to 422", func(t *testing.T) {
		useCase := new(mocks.MockAuthorizationUseCase)

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodPost, "/v1/authz/check", gin.H{
			"username": "jane.doe",
			"action":   "read",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthzHandler_UserPermissionsHandler(t *testing.T) {
	t.Run("active user projection", func(t *testing.T) {
		orgID := int64(7)
		useCase := new(mocks.MockAuthorizationUseCase)
		useCase.On("GetUserPermissions", mock.Anything, "jane.doe").
			Return(authDomain.UserPermissions{
				Username:       "jane.doe",
				Permissions:    []string{"vault:read", "vault:write"},
				Roles:          []string{"operator"},
				OrganizationID: &orgID,
				IsActive:       true,
			})

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodGet, "/v1/authz/users/jane.doe/permissions", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, true, response["is_active"])
		assert.Len(t, response["permissions"], 2)
	})

	t.Run("unknown user yields empty projection, not 404", func(t *testing.T) {
		useCase := new(mocks.MockAuthorizationUseCase)
		useCase.On("GetUserPermissions", mock.Anything, "ghost").
			Return(authDomain.UserPermissions{
				Username:    "ghost",
				Permissions: []string{},
				Roles:       []string{},
				IsActive:    false,
			})

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodGet, "/v1/authz/users/ghost/permissions", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, false, response["is_active"])
		assert.Empty(t, response["permissions"])
	})

	t.Run("invalid username maps to 422", func(t *testing.T) {
		useCase := new(mocks.MockAuthorizationUseCase)

		recorder := performJSONRequest(setupAuthzRouter(useCase), http.MethodGet, "/v1/authz/users/bad%20name/permissions", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "GetUserPermissions", mock.Anything, mock.Anything)
	})
}

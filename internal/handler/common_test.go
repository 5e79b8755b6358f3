package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"

	"ticketera/internal/handler"
	"ticketera/internal/model"
	serviceMocks "ticketera/internal/service/mocks"
	apperrors "ticketera/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

var (
	InvalidJSON = `{"invalid": json}`

	testToken = "valid-token"
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createAuthedJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req := createJSONHTTPRequest(method, url, data)
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func createAuthedHTTPRequest(method, url string) *http.Request {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

// newTestRouter wires the auth middleware with a mocked token check that
// resolves testToken to actor. A nil actor makes the middleware reject every
// token.
func newTestRouter(actor *model.User) (*gin.Engine, gin.HandlerFunc, *serviceMocks.AuthServiceMock) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authService := serviceMocks.NewAuthServiceMock()
	if actor != nil {
		authService.On("Authenticate", mock.Anything, testToken).Return(actor, nil).Maybe()
	} else {
		authService.On("Authenticate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthenticated).Maybe()
	}

	return router, handler.AuthMiddleware(authService), authService
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/masanorih/address2zip/internal/models"
	"github.com/masanorih/address2zip/internal/resolver"
	"github.com/masanorih/address2zip/internal/service"
)

// MockZipcodeService is a mock implementation of the ZipcodeService interface
type MockZipcodeService struct {
	mock.Mock
}

func (m *MockZipcodeService) Resolve(ctx context.Context, address string) (*service.Resolution, error) {
	args := m.Called(ctx, address)
	if res := args.Get(0); res != nil {
		return res.(*service.Resolution), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestZipcodeHandler_Zipcode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	roppongi := &service.Resolution{
		Match: models.Match{
			PostalCode: "1060032",
			Prefecture: "東京都",
			City:       "港区",
			District:   "六本木",
		},
		OriginalAddress:   "東京都港区六本木５丁目",
		NormalizedAddress: "東京都港区六本木5丁目",
	}

	tests := []struct {
		name           string
		body           interface{}
		address        string
		mockResolution *service.Resolution
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing address field",
			body:           gin.H{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "missing required field 'address'"},
		},
		{
			name:           "blank address",
			body:           gin.H{"address": "   "},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "address must not be blank"},
		},
		{
			name:           "successful resolution",
			body:           gin.H{"address": "東京都港区六本木５丁目"},
			address:        "東京都港区六本木５丁目",
			mockResolution: roppongi,
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"zipcode":            "1060032",
				"original_address":   "東京都港区六本木５丁目",
				"normalized_address": "東京都港区六本木5丁目",
				"prefecture":         "東京都",
				"city":               "港区",
				"district":           "六本木",
			},
		},
		{
			name:           "address not found",
			body:           gin.H{"address": "東京都港区存在しない町名"},
			address:        "東京都港区存在しない町名",
			mockError:      resolver.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   gin.H{"error": "no postal code found for address"},
		},
		{
			name:           "malformed address",
			body:           gin.H{"address": "どこでもない場所"},
			address:        "どこでもない場所",
			mockError:      resolver.ErrMalformedAddress,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "address has no recognizable prefecture or city"},
		},
		{
			name:           "service error",
			body:           gin.H{"address": "東京都港区六本木"},
			address:        "東京都港区六本木",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockZipcodeService)
			handler := NewZipcodeHandler(mockSvc)

			if tt.address != "" {
				mockSvc.On("Resolve", mock.Anything, tt.address).Return(tt.mockResolution, tt.mockError)
			}

			// Create request
			payload, err := json.Marshal(tt.body)
			assert.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/address2zipcode", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.Zipcode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err = json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)

			expected, err := json.Marshal(tt.expectedBody)
			assert.NoError(t, err)
			var expectedBody interface{}
			assert.NoError(t, json.Unmarshal(expected, &expectedBody))
			assert.Equal(t, expectedBody, actualBody)

			if tt.address != "" {
				mockSvc.AssertExpectations(t)
			}
		})
	}
}

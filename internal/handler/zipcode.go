package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/masanorih/address2zip/internal/resolver"
	"github.com/masanorih/address2zip/internal/service"
)

// ZipcodeHandler handles address-to-zipcode requests
type ZipcodeHandler struct {
	service ZipcodeService
}

// Service interface for dependency injection
type ZipcodeService interface {
	Resolve(context.Context, string) (*service.Resolution, error)
}

// NewZipcodeHandler creates a new zipcode handler
func NewZipcodeHandler(svc ZipcodeService) *ZipcodeHandler {
	return &ZipcodeHandler{service: svc}
}

// AddressRequest is the POST /address2zipcode request body.
type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// ZipcodeResponse is the successful resolution payload.
type ZipcodeResponse struct {
	Zipcode           string `json:"zipcode"`
	OriginalAddress   string `json:"original_address"`
	NormalizedAddress string `json:"normalized_address"`
	Prefecture        string `json:"prefecture"`
	City              string `json:"city"`
	District          string `json:"district"`
}

// Zipcode handles POST /address2zipcode requests
//
//	@Summary		Resolve a Japanese address to its postal code
//	@Description	Normalizes a free-form Japanese address string and resolves it to a 7-digit postal code
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddressRequest	true	"address to resolve"
//	@Success		200		{object}	ZipcodeResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/address2zipcode [post]
func (h *ZipcodeHandler) Zipcode(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'address'"})
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address must not be blank"})
		return
	}

	res, err := h.service.Resolve(c.Request.Context(), req.Address)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrMalformedAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "address has no recognizable prefecture or city"})
		case errors.Is(err, resolver.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no postal code found for address"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ZipcodeResponse{
		Zipcode:           res.Match.PostalCode,
		OriginalAddress:   res.OriginalAddress,
		NormalizedAddress: res.NormalizedAddress,
		Prefecture:        res.Match.Prefecture,
		City:              res.Match.City,
		District:          res.Match.District,
	})
}

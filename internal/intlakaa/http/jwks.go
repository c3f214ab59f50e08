package http

import (
	"net/http"

	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/aussiebroadwan/intlakaa/pkg/httpx"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify admin tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	adminsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, adminsdk.JWKSResponse(keys.PublicJWKS()))
	}
}

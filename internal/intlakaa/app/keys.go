package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/intlakaa/pkg/cryptox"
	"github.com/aussiebroadwan/intlakaa/pkg/jwtx"
)

// InitAdminKeys loads the Ed25519 signing key from cfg.SigningKeyFile,
// generating it on first start, so issued admin tokens survive restarts.
func InitAdminKeys(cfg Config, logger *slog.Logger) (*jwtx.Keys, error) {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, err
	}

	keys, err := jwtx.NewEdDSAKeys(pemKey, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	logger.Info("admin signing key loaded",
		"kid", keys.Signer.KID(),
		"algorithm", keys.Signer.Alg(),
		"issuer", cfg.Issuer,
	)
	return keys, nil
}

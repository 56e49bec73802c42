package app

import (
	"strings"
	"time"

	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
	"github.com/medtrace/medtrace-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	FrontendBaseURL string
	LabelDir        string
	LabelFont       string
	AllowedOrigins  []string
	Port            string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	frontendBaseURL := utils.GetEnv("FRONTEND_URL", "http://localhost:4200", log)
	origins := utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:4200", log)

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		FrontendBaseURL: frontendBaseURL,
		LabelDir:        utils.GetEnv("LABEL_DIR", "", log),
		LabelFont:       utils.GetEnv("LABEL_FONT", "", log),
		AllowedOrigins:  splitOrigins(origins),
		Port:            utils.GetEnv("PORT", "8080", log),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

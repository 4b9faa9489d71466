package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Email del administrador: el único usuario con rol admin
	AdminEmail string

	// Umbrales de alertas del tablero
	OverdueDays      int     // días para considerar una transacción vencida
	PayablesLimit    float64 // límite de alerta para CXP
	ReceivablesLimit float64 // límite de alerta para CXC

	// Lista cerrada de obras (el proyecto "General" siempre está incluido)
	Projects []string

	// Cache opcional de métricas del tablero
	RedisAddr    string
	RedisTTLSecs int
}

const GeneralProject = "General"

func Load() *Config {
	// .env es opcional, en producción todo viene del entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=fincontrol port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AdminEmail:       strings.TrimSpace(strings.ToLower(getEnv("ADMIN_EMAIL", ""))),
		OverdueDays:      getEnvInt("OVERDUE_DAYS", 15),
		PayablesLimit:    getEnvFloat("PAYABLES_ALERT_LIMIT", 15000),
		ReceivablesLimit: getEnvFloat("RECEIVABLES_ALERT_LIMIT", 15000),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisTTLSecs:     getEnvInt("REDIS_TTL_SECONDS", 30),
	}

	cfg.Projects = ParseProjectList(getEnv("PROJECT_LIST", "Torre Norte,Residencial Las Palmas,Puente Río Claro,Bodega Central"))

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable de entorno JWT_SECRET no está definida. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if cfg.AdminEmail == "" {
		log.Fatal("[FATAL] ADMIN_EMAIL no está definido. Se necesita para resolver el rol admin.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=fincontrol port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, define tu propia conexión de Postgres en producción.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto, define tu propio dominio en producción.")
	}

	return cfg
}

// ParseProjectList: separa la lista por comas, descarta entradas vacías y
// garantiza que la obra comodín "General" siempre esté presente
func ParseProjectList(raw string) []string {
	var projects []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			projects = append(projects, p)
		}
	}
	for _, p := range projects {
		if p == GeneralProject {
			return projects
		}
	}
	return append(projects, GeneralProject)
}

// HasProject: verifica pertenencia a la lista cerrada de obras
func (c *Config) HasProject(name string) bool {
	for _, p := range c.Projects {
		if p == name {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s no es un entero válido, se usa %d", key, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[WARN] %s no es un número válido, se usa %.2f", key, def)
	}
	return def
}

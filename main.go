package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"lg/fitness-coach-api/internal/foodrec"
)

// config is the service configuration, read from the environment (and .env).
type config struct {
	DBURL          string
	Port           string
	OpenAIBaseURL  string
	BodyModelURL   string // empty: no trained model, formula estimates only
	CatalogPath    string // empty: embedded default catalog
	AllowedOrigins []string
}

// getEnv returns the environment value for key, or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfig() config {
	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return config{
		DBURL:          os.Getenv("DB_URL"),
		Port:           getEnv("PORT", "3000"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		BodyModelURL:   os.Getenv("BODY_MODEL_URL"),
		CatalogPath:    os.Getenv("FOOD_CATALOG_PATH"),
		AllowedOrigins: origins,
	}
}

func main() {
	log.SetPrefix("lg/fitness-coach-api: ")
	log.SetFlags(log.LstdFlags)

	// A missing .env is fine in production where the environment is set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}
	cfg := loadConfig()

	catalog, err := foodrec.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load food catalog: %v", err)
	}
	log.Printf("food catalog loaded: %d items", catalog.Len())

	h := Handler{
		db:            getDBPool(cfg.DBURL),
		openAIBaseURL: cfg.OpenAIBaseURL,
		catalog:       catalog,
		estimator:     newEstimator(cfg.BodyModelURL),
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(router)); err != nil {
		log.Fatal(err)
	}
}

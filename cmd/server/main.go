package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"devflow/internal/db"
	"devflow/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"devflow/internal/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	// 显式放宽 cookie 属性，否则默认 Secure 会让纯 HTTP 部署丢会话
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   os.Getenv("SESSION_SECURE") == "true",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("devflow_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("DevFlow server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// loadTemplates 每个视图模板都和布局文件一起编译，避免命名冲突
func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	views, err := filepath.Glob(templatesDir + "/*.html")
	if err != nil {
		panic(err)
	}
	authViews, err := filepath.Glob(templatesDir + "/auth/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	for _, view := range views {
		r.AddFromFiles(filepath.Base(view), assemble(view)...)
	}
	for _, view := range authViews {
		r.AddFromFiles("auth/"+filepath.Base(view), assemble(view)...)
	}

	return r
}

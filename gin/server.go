package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server adapts a gin router to the RegisterHandler interface the http
// packages expect. Path parameters are copied into the request context under
// "params" so the kit decoders can read them without depending on gin.
type Server struct {
	router *gin.Engine
}

func New(env string) *Server {
	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	return &Server{router: router}
}

func (s *Server) RegisterHandler(path, method string, f http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, param := range c.Params {
			params[param.Key] = param.Value
		}

		ctx := contextWithParams(c.Request.Context(), params)
		f.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

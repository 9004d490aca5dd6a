package followerwatch

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewStatusServer starts an HTTP server on addr exposing the watcher's
// last-run state at GET /status. It returns immediately; the caller owns
// shutdown.
func NewStatusServer(addr string, w *Watcher, log *zap.SugaredLogger) *http.Server {
	srv := &http.Server{
		Addr:        addr,
		Handler:     statusRouter(w),
		ReadTimeout: 30 * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Errorw("error running status server", "err", err.Error())
		}
		log.Infow("status server stopped")
	}()
	return srv
}

func statusRouter(w *Watcher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, w.Status())
	})
	return router
}

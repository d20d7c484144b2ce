package bootstrap

import (
	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpapi "github.com/eleccycle/eleccycle-backend/internal/api/http"
	"github.com/eleccycle/eleccycle-backend/internal/api/http/middleware"
	"github.com/eleccycle/eleccycle-backend/internal/auth"
	authhttp "github.com/eleccycle/eleccycle-backend/internal/auth/http"
	"github.com/eleccycle/eleccycle-backend/internal/auth/identitytoolkit"
	authservice "github.com/eleccycle/eleccycle-backend/internal/auth/service"
	rechttp "github.com/eleccycle/eleccycle-backend/internal/recycling/http"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/repository"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	WebAPIKey   string
	AuthClient  *fbauth.Client
	Store       *firestore.Client
	Redis       *redis.Client
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Redis)
	healthHandler.RegisterRoutes(r)

	profileRepo := repository.NewProfileRepository(dep.Store)
	activityRepo := repository.NewActivityRepository(dep.Store)
	pointRepo := repository.NewPointRepository(dep.Store)
	guard := repository.NewWriteGuard(dep.Redis)

	profileSvc := service.NewProfileService(profileRepo, activityRepo)
	activitySvc := service.NewActivityService(activityRepo, profileRepo, guard, dep.Logger)
	locatorSvc := service.NewLocatorService(pointRepo)

	tokens := identitytoolkit.New(dep.WebAPIKey)
	authSvc := authservice.NewAuthService(dep.AuthClient, tokens, dep.Logger)

	authHandler := authhttp.New(authSvc, profileSvc, dep.Logger)
	recHandler := rechttp.New(profileSvc, activitySvc, locatorSvc, dep.Logger)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(rate.Limit(5), 10))
	authHandler.Register(authGroup)

	authProtected := authGroup.Group("")
	authProtected.Use(auth.RequireAuth(dep.AuthClient))
	authHandler.RegisterProtected(authProtected)

	recHandler.RegisterPublic(api)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(dep.AuthClient))
	recHandler.Register(protected)

	return r
}

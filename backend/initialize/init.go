package initialize

import (
	"fmt"
	"net/http"

	"safesurf/backend/app/cache"
	"safesurf/backend/app/controllers"
	"safesurf/backend/app/db"
	jwtutil "safesurf/backend/app/jwt"
	"safesurf/backend/app/middleware"
	"safesurf/backend/app/models"
	"safesurf/backend/app/repo"
	"safesurf/backend/app/services"
	"safesurf/backend/config"
	"safesurf/backend/global"
	"safesurf/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg       config.Config
	DB        *gorm.DB
	Router    http.Handler
	Users     *services.UserService
	Settings  *services.SettingsService
	Whitelist *services.WhitelistService
	Activity  *services.ActivityService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.UserSettings{}, &models.WhitelistEntry{}, &models.ActivityLog{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is the freshness cache for policy documents; a dead Redis only
	// costs cache hits, reads fall back to MySQL.
	global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	docCache := cache.New(global.Rdb)

	// Repositories and services
	userRepo := repo.NewUserRepository(gdb)
	settingsRepo := repo.NewSettingsRepository(gdb)
	whitelistRepo := repo.NewWhitelistRepository(gdb)
	activityRepo := repo.NewActivityRepository(gdb)

	userSvc := services.NewUserService(userRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, docCache)
	whitelistSvc := services.NewWhitelistService(whitelistRepo, docCache)
	activitySvc := services.NewActivityService(activityRepo)
	if err := userSvc.EnsureAdmin("admin", "admin123"); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin failed")
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer}
	httpCtrl := controllers.NewHTTPController()
	authCtrl := controllers.NewAuthController(userSvc, signer)
	adminCtrl := controllers.NewAdminController(userSvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc)
	whitelistCtrl := controllers.NewWhitelistController(whitelistSvc)
	activityCtrl := controllers.NewActivityController(activitySvc)

	h := router.NewRouter(httpCtrl, authCtrl, adminCtrl, settingsCtrl, whitelistCtrl, activityCtrl, mw)
	h = middleware.Logging(h)

	return &App{
		Cfg:       *cfg,
		DB:        gdb,
		Router:    h,
		Users:     userSvc,
		Settings:  settingsSvc,
		Whitelist: whitelistSvc,
		Activity:  activitySvc,
	}, nil
}

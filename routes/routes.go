package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/controllers"
	"github.com/solipsisticstratosphere/Fit-Track/middlewares"
	"github.com/solipsisticstratosphere/Fit-Track/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, images services.ImageStore) *gin.Engine {
	r := gin.Default()

	authSvc := services.NewAuthService(db)
	userSvc := services.NewUserService(db, images)
	workoutSvc := services.NewWorkoutService(db)
	mealSvc := services.NewMealService(db)
	weightSvc := services.NewWeightService(db)

	authCtl := controllers.NewAuthController(authSvc, userSvc)
	userCtl := controllers.NewUserController(userSvc)
	workoutCtl := controllers.NewWorkoutController(workoutSvc)
	mealCtl := controllers.NewMealController(mealSvc, images)
	weightCtl := controllers.NewWeightController(weightSvc)
	uploadCtl := controllers.NewUploadController(images)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/refresh", middlewares.AuthMiddleware(), authCtl.Refresh)
	}

	// Everything below requires an authenticated session
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/meals", mealCtl.List)
		api.POST("/meals", mealCtl.Create)
		api.GET("/meals/totals", mealCtl.DailyTotals)
		api.GET("/meals/:id", mealCtl.Get)
		api.PUT("/meals/:id", mealCtl.Update)
		api.DELETE("/meals/:id", mealCtl.Delete)

		api.GET("/workouts", workoutCtl.List)
		api.POST("/workouts", workoutCtl.Create)
		api.GET("/workouts/stats", workoutCtl.Stats)
		api.GET("/workouts/:id", workoutCtl.Get)
		api.PATCH("/workouts/:id", workoutCtl.Update)
		api.DELETE("/workouts/:id", workoutCtl.Delete)
		api.POST("/workouts/:id/copy", workoutCtl.Copy)

		api.GET("/weight", weightCtl.List)
		api.POST("/weight", weightCtl.Create)
		api.GET("/weight/stats", weightCtl.Stats)
		api.PUT("/weight/:id", weightCtl.Update)
		api.DELETE("/weight/:id", weightCtl.Delete)

		api.GET("/users/:id", userCtl.Get)
		api.PATCH("/users/:id", userCtl.Update)
		api.PUT("/users/:id/password", userCtl.ChangePassword)
		api.DELETE("/users/:id", userCtl.Delete)

		api.POST("/upload", uploadCtl.Upload)
	}

	return r
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/controllers"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	courseController *controllers.CourseController,
	eventController *controllers.EventController,
	careerController *controllers.CareerController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public plan catalog ---
	plans := v1.Group("/plans")
	{
		plans.GET("", planController.ListPlans)
		plans.GET("/:id", planController.GetPlanByID)
	}

	// --- Public career assessment flow ---
	// Guests are identified by the X-Session-Token header, not a JWT.
	career := v1.Group("/career")
	{
		career.POST("/assessments", careerController.StartAssessment)
		career.POST("/assessments/:id/complete", careerController.CompleteAssessment)
		career.POST("/assessments/:id/abandon", careerController.AbandonAssessment)
		career.POST("/assessments/:id/share", careerController.ShareAssessment)
		career.POST("/assessments/:id/feedback", careerController.SubmitFeedback)
		career.GET("/shared/:code", careerController.GetSharedAssessment)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile and onboarding funnel
		authenticated.GET("/users/me", userController.GetProfile)
		authenticated.GET("/profile/scholarship-assessment", userController.GetScholarshipAssessment)
		authenticated.PUT("/profile/scholarship-assessment", userController.SaveScholarshipAssessment)
		authenticated.GET("/profile/personal-discovery", userController.GetPersonalDiscovery)
		authenticated.PUT("/profile/personal-discovery", userController.SavePersonalDiscovery)
		authenticated.GET("/profile/cv", userController.GetCV)
		authenticated.PUT("/profile/cv", userController.SaveCV)

		// Funnel advancement is restricted to staff
		progressProtected := authenticated.Group("/users")
		progressProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor))
		{
			progressProtected.PUT("/:id/progress", userController.AdvanceProgress)
		}

		// Plan management (admin only)
		plansProtected := authenticated.Group("/plans")
		plansProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			plansProtected.POST("", planController.CreatePlan)
			plansProtected.PUT("/:id", planController.UpdatePlan)
			plansProtected.DELETE("/:id", planController.DeletePlan)
		}

		// Subscriptions
		authenticated.POST("/subscriptions", subscriptionController.RequestSubscription)
		authenticated.GET("/subscriptions/me", subscriptionController.GetMySubscriptions)

		// Payment review (admin only)
		proofsProtected := authenticated.Group("/payment-proofs")
		proofsProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			proofsProtected.GET("", subscriptionController.ListPaymentProofs)
			proofsProtected.POST("/:id/review", subscriptionController.ReviewPayment)
		}

		// Courses and enrollments
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("/:id/enroll", courseController.Enroll)

			coursesStaffProtected := courses.Group("")
			coursesStaffProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor))
			{
				coursesStaffProtected.POST("", courseController.CreateCourse)
				coursesStaffProtected.POST("/:id/lessons", courseController.AddLesson)
			}
		}

		authenticated.GET("/enrollments/me", courseController.GetMyEnrollments)
		authenticated.POST("/enrollments/:id/lessons/:lessonId/complete", courseController.CompleteLesson)

		// Events
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.GetAllEvents)
			events.GET("/:id", eventController.GetEventByID)
			events.POST("/:id/register", eventController.Register)
			events.DELETE("/:id/register", eventController.Unregister)
			events.GET("/:id/registration", eventController.RegistrationStatus)

			eventsStaffProtected := events.Group("")
			eventsStaffProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor))
			{
				eventsStaffProtected.POST("", eventController.CreateEvent)
			}
		}

		// Analytics over completed career assessments (staff only)
		analyticsProtected := authenticated.Group("/career")
		analyticsProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor))
		{
			analyticsProtected.GET("/analytics", careerController.GetAnalytics)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}

package main

import (
	"log"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/database"
	"github.com/musa-q/MyArabicLearner/internal/handlers"
	"github.com/musa-q/MyArabicLearner/internal/logger"
	"github.com/musa-q/MyArabicLearner/internal/mailer"
	"github.com/musa-q/MyArabicLearner/internal/middleware"
	"github.com/musa-q/MyArabicLearner/internal/models"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title           My Arabic Learner API
// @version         1.0
// @description     Backend for the Levantine Arabic learning app
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	sender := mailer.NewSMTPSender(cfg.SMTP)

	tokenService := services.NewTokenService()
	sessionService := services.NewSessionService(db, tokenService, sender, cfg, zlog)
	quizService := services.NewQuizService(db, cfg)
	feedbackService := services.NewFeedbackService(db)
	userService := services.NewUserService(db)
	maintenanceService := services.NewMaintenanceService(db)

	authHandler := handlers.NewAuthHandler(sessionService)
	quizHandler := handlers.NewQuizHandler(quizService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	userHandler := handlers.NewUserHandler(userService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	visualiserHandler := handlers.NewVisualiserHandler(maintenanceService)
	homeHandler := handlers.NewHomeHandler()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
		AllowCredentials: true,
	}))

	r.GET("/", homeHandler.Home)

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify", authHandler.Verify)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/logout", middleware.RequireAuth(sessionService), authHandler.Logout)
		auth.POST("/logout-all", middleware.RequireAuth(sessionService, models.RoleAdmin), authHandler.LogoutAll)
		auth.GET("/sessions", middleware.RequireAuth(sessionService), authHandler.ListSessions)
	}

	quiz := r.Group("/quiz")
	quiz.Use(middleware.RequireAuth(sessionService))
	{
		quiz.POST("/create-vocab-quiz", quizHandler.CreateVocabQuiz)
		quiz.POST("/create-verb-conjugation-quiz", quizHandler.CreateVerbConjugationQuiz)
		quiz.POST("/get-next-question", quizHandler.GetNextQuestion)
		quiz.POST("/send-answer", quizHandler.SendAnswer)
		quiz.POST("/check-quiz-finished", quizHandler.CheckQuizFinished)
		quiz.POST("/get-results", quizHandler.GetResults)
		quiz.POST("/get-completed-quizzes", quizHandler.GetCompletedQuizzes)
		quiz.POST("/get-quiz-details", quizHandler.GetQuizDetails)
		quiz.POST("/category-best-scores", quizHandler.CategoryBestScores)
	}

	feedback := r.Group("/feedback")
	{
		feedback.POST("/send-feedback", middleware.RequireAuth(sessionService), feedbackHandler.SendFeedback)
		feedback.GET("/get-feedback", middleware.RequireAuth(sessionService, models.RoleAdmin), feedbackHandler.GetFeedback)
	}

	user := r.Group("/user")
	user.Use(middleware.RequireAuth(sessionService, models.RoleAdmin))
	{
		user.POST("/view-users", userHandler.ViewUsers)
		user.DELETE("/delete-user", userHandler.DeleteUser)
	}

	maintenance := r.Group("/maintenance")
	maintenance.Use(middleware.RequireAuth(sessionService, models.RoleAdmin))
	{
		maintenance.POST("/update-flashcard", maintenanceHandler.UpdateFlashcard)
		maintenance.POST("/add-flashcard", maintenanceHandler.AddFlashcard)
		maintenance.POST("/add-category", maintenanceHandler.AddCategory)
		maintenance.POST("/update-category", maintenanceHandler.UpdateCategory)
		maintenance.DELETE("/delete-category", maintenanceHandler.DeleteCategory)
		maintenance.GET("/get-all-verbs", maintenanceHandler.GetAllVerbs)
		maintenance.POST("/get-verb-conjugations", maintenanceHandler.GetVerbConjugations)
		maintenance.POST("/add-conjugation", maintenanceHandler.AddConjugation)
		maintenance.POST("/update-conjugation", maintenanceHandler.UpdateConjugation)
	}

	visualisers := r.Group("/visualisers")
	visualisers.Use(middleware.RequireAuth(sessionService))
	{
		visualisers.GET("/get-verbs", visualiserHandler.GetVerbs)
		visualisers.POST("/get-verb-table", visualiserHandler.GetVerbTable)
	}

	r.POST("/homepage", middleware.RequireAuth(sessionService), homeHandler.Homepage)

	zlog.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

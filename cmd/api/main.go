package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"homefood/internal/adapter/api"
	"homefood/internal/adapter/api/handler"
	apimiddleware "homefood/internal/adapter/api/middleware"
	"homefood/internal/adapter/api/router"
	"homefood/internal/adapter/repository"
	"homefood/internal/infrastructure/fcm"
	"homefood/internal/infrastructure/firebase"
	"homefood/internal/infrastructure/websocket"
	"homefood/internal/usecase"
	"homefood/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	repository.SetStoreTimeout(cfg.StoreTimeout)

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	dishRepo := repository.NewFirestoreDishRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notifier := fcm.NewDispatcher(messagingClient, userRepo)

	dishUseCase := usecase.NewDishUseCase(dishRepo, userRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, dishRepo, notifier, wsManager)
	chatUseCase := usecase.NewChatUseCase(messageRepo, orderRepo, notifier, wsManager)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, orderRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebase.NewFirebaseAuthClient(authClient))
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	dishHandler := handler.NewDishHandler(dishUseCase)
	orderHandler := handler.NewOrderHandler(orderUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, chatUseCase)

	router.Setup(e, authMiddleware, adminMiddleware, dishHandler, orderHandler, chatHandler, reviewHandler, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

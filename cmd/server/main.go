package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"mandi_backend/internal/app/di"
	"mandi_backend/internal/app/router"
	authadapters "mandi_backend/internal/feature/auth/adapters"
	authhandler "mandi_backend/internal/feature/auth/transport/handler"
	authusecase "mandi_backend/internal/feature/auth/usecase"
	cropscangemini "mandi_backend/internal/feature/cropscan/adapters/gemini"
	cropscanvision "mandi_backend/internal/feature/cropscan/adapters/vision"
	cropscanhandler "mandi_backend/internal/feature/cropscan/transport/handler"
	cropscanusecase "mandi_backend/internal/feature/cropscan/usecase"
	"mandi_backend/internal/feature/decision/adapters/csvstore"
	decisionhandler "mandi_backend/internal/feature/decision/transport/handler"
	decisionusecase "mandi_backend/internal/feature/decision/usecase"
	listingadapters "mandi_backend/internal/feature/listings/adapters"
	listinghandler "mandi_backend/internal/feature/listings/transport/handler"
	listingusecase "mandi_backend/internal/feature/listings/usecase"
	negotiationadapters "mandi_backend/internal/feature/negotiation/adapters"
	negotiationhandler "mandi_backend/internal/feature/negotiation/transport/handler"
	negotiationusecase "mandi_backend/internal/feature/negotiation/usecase"
	orderadapters "mandi_backend/internal/feature/orders/adapters"
	orderhandler "mandi_backend/internal/feature/orders/transport/handler"
	orderusecase "mandi_backend/internal/feature/orders/usecase"
	infradb "mandi_backend/internal/platform/db"
	infraredis "mandi_backend/internal/platform/redis"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// defaultPriceDataPath は政府公開の市場価格CSVのデフォルトパスです。
const defaultPriceDataPath = "data/mandi_prices.csv"

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 価格データストア（バックグラウンドで読み込み開始、クエリ側は初回参照時に完了を待つ）
	priceDataPath := os.Getenv("MANDI_PRICES_CSV")
	if priceDataPath == "" {
		priceDataPath = defaultPriceDataPath
	}
	priceStore := csvstore.New(priceDataPath)
	go priceStore.Load()

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	listingRepo := listingadapters.NewListingRepository(db)
	orderRepo := orderadapters.NewOrderRepository(db)
	threadRepo := negotiationadapters.NewThreadPostgres(db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	decisionUC := decisionusecase.NewDecisionUsecase(
		priceStore,
		decisionusecase.NewRandomDemandSampler(),
		di.NewTranslator(rdb),
		di.NewTranslateBudget(),
	)
	listingUC := listingusecase.NewListingUsecase(listingRepo)
	orderUC := orderusecase.NewOrderUsecase(orderRepo, listingRepo)
	negotiationUC := negotiationusecase.NewNegotiationUsecase(threadRepo, listingRepo)

	// Handler
	handlers := router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Decision:    decisionhandler.NewDecisionHandler(decisionUC),
		Listing:     listinghandler.NewListingHandler(listingUC),
		Order:       orderhandler.NewOrderHandler(orderUC),
		Negotiation: negotiationhandler.NewNegotiationHandler(negotiationUC),
	}

	// Vision/GeminiはADCが構成されている環境でのみ有効化する
	if detector, err := cropscanvision.NewVisionProduceDetector(ctx); err != nil {
		log.Println("[WARN] Vision client unavailable. CropScan routes disabled:", err)
	} else if advisor, err := cropscangemini.NewGeminiAdvisor(ctx); err != nil {
		log.Println("[WARN] Gemini client unavailable. CropScan routes disabled:", err)
	} else {
		defer func() {
			if err := detector.Close(); err != nil {
				log.Println("[ERROR] Failed to close Vision client:", err)
			}
		}()
		cropscanUC := cropscanusecase.NewCropScanUsecase(detector, advisor)
		handlers.CropScan = cropscanhandler.NewCropScanHandler(cropscanUC)
	}

	// ルータ生成
	r := router.NewRouter(handlers)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

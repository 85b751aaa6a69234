package router

import (
	"github.com/gin-gonic/gin"

	authentity "mandi_backend/internal/feature/auth/domain/entity"
	authhandler "mandi_backend/internal/feature/auth/transport/handler"
	cropscanhandler "mandi_backend/internal/feature/cropscan/transport/handler"
	decisionhandler "mandi_backend/internal/feature/decision/transport/handler"
	listinghandler "mandi_backend/internal/feature/listings/transport/handler"
	negotiationhandler "mandi_backend/internal/feature/negotiation/transport/handler"
	orderhandler "mandi_backend/internal/feature/orders/transport/handler"
	"mandi_backend/internal/platform/http/handler"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するフィーチャーごとのハンドラー一式です。
// CropScanは外部APIクライアントの初期化に失敗した場合nilになり、
// その場合cropscan系のルートは登録されません。
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Decision    *decisionhandler.DecisionHandler
	Listing     *listinghandler.ListingHandler
	Order       *orderhandler.OrderHandler
	Negotiation *negotiationhandler.NegotiationHandler
	CropScan    *cropscanhandler.CropScanHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)
	// 公開中の出品は未認証でも閲覧できる
	r.GET("/api/listings", h.Listing.Browse)
	r.GET("/api/listings/:id", h.Listing.Get)

	// 認証必須のルート
	auth := r.Group("/api")
	auth.Use(jwtmw.AuthRequired())
	{
		// 価格意思決定エンジン
		auth.GET("/decision", h.Decision.GetDecision)
		auth.GET("/decision/commodities", h.Decision.ListCommodities)

		// 出品管理（農家）
		auth.POST("/listings", jwtmw.RequireRole(authentity.RoleFarmer), h.Listing.Create)
		auth.GET("/my/listings", jwtmw.RequireRole(authentity.RoleFarmer), h.Listing.ListMine)
		auth.PUT("/listings/:id", jwtmw.RequireRole(authentity.RoleFarmer), h.Listing.Update)
		auth.DELETE("/listings/:id", jwtmw.RequireRole(authentity.RoleFarmer), h.Listing.Delete)

		// 注文
		auth.POST("/orders", jwtmw.RequireRole(authentity.RoleBuyer), h.Order.Create)
		auth.GET("/my/orders", h.Order.ListMine)
		auth.PATCH("/orders/:id/status", h.Order.UpdateStatus)

		// 価格交渉
		auth.POST("/negotiations", jwtmw.RequireRole(authentity.RoleBuyer), h.Negotiation.Open)
		auth.GET("/my/negotiations", h.Negotiation.ListMine)
		auth.GET("/negotiations/:id", h.Negotiation.Get)
		auth.POST("/negotiations/:id/offers", h.Negotiation.Counter)
		auth.PATCH("/negotiations/:id", jwtmw.RequireRole(authentity.RoleFarmer), h.Negotiation.Resolve)

		// 農産物スキャンと市況アドバイス
		if h.CropScan != nil {
			auth.POST("/cropscan", h.CropScan.DetectProduce)
			auth.GET("/advisory/:commodity", h.CropScan.GetAdvisory)
		}
	}

	// 管理者専用のルート
	admin := r.Group("/api/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.RequireRole(authentity.RoleAdmin))
	{
		admin.GET("/listings", h.Listing.ListPending)
		admin.PATCH("/listings/:id/status", h.Listing.Moderate)
	}

	return r
}

package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/controllers"
	"github.com/ordena-app/ordena/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inicialização dos controllers
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	callCtrl := controllers.NewWaiterCallController(db)
	billingCtrl := controllers.NewBillingController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter para login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CLIENTE (sem auth, identificado pelo QR da mesa) --
	mesa := r.Group("/mesas/:code")
	{
		mesa.GET("/scan", tableCtrl.ScanTable)
		mesa.GET("/cardapio", productCtrl.GetMenu)

		mesa.GET("/carrinho", cartCtrl.GetCart)
		mesa.PUT("/carrinho", cartCtrl.PutCart)
		mesa.DELETE("/carrinho", cartCtrl.ClearCart)

		mesa.POST("/pedidos", orderCtrl.CreateOrder)
		mesa.GET("/pedidos", orderCtrl.GetTableOrders)

		mesa.POST("/chamar-garcom", callCtrl.CreateCall)
		mesa.GET("/chamados", callCtrl.GetTableCalls)

		mesa.POST("/conta/dividir", billingCtrl.SplitBill)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// MESAS
	auth.GET("/mesas", tableCtrl.GetAllTables)
	auth.POST("/mesas", middlewares.RequireRole("admin"), tableCtrl.CreateTable)
	auth.PATCH("/mesas/:code", tableCtrl.UpdateTableStatus)
	auth.DELETE("/mesas/:code", middlewares.RequireRole("admin"), tableCtrl.DeleteTable)

	// CATEGORIAS
	auth.GET("/categorias", categoryCtrl.GetAllCategories)
	auth.POST("/categorias", categoryCtrl.CreateCategory)
	auth.PATCH("/categorias/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categorias/:cat_id", categoryCtrl.DeleteCategory)

	// PRODUTOS
	auth.GET("/produtos", productCtrl.GetAllProducts)
	auth.POST("/produtos", productCtrl.CreateProduct)
	auth.PATCH("/produtos/:product_id", productCtrl.UpdateProduct)
	auth.PATCH("/produtos/:product_id/disponibilidade", productCtrl.ToggleAvailability)
	auth.DELETE("/produtos/:product_id", middlewares.RequireRole("admin"), productCtrl.DeleteProduct)

	// PEDIDOS
	auth.GET("/pedidos", orderCtrl.GetAllOrders)
	auth.GET("/pedidos/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/pedidos/:order_id", orderCtrl.UpdateOrderStatus)

	// CHAMADOS DE GARÇOM
	auth.GET("/chamados", callCtrl.GetAllCalls)
	auth.PATCH("/chamados/:call_id", callCtrl.UpdateCall)

	// CONTA
	auth.POST("/mesas/:code/fechar-conta", billingCtrl.CloseBill)
	auth.GET("/recibos", billingCtrl.GetReceipts)

	// WebSocket do painel (token via query string)
	ws := r.Group("/admin/events")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/ws", controllers.EventsHandler)
	}

	return r
}

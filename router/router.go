package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/controllers"
	"github.com/bootheat/bootheat-server/middlewares"
)

// SetupRouter wires the full HTTP surface: the public QR ordering routes,
// the manager console behind JWT auth, and the admin provisioning routes.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderCtrl := controllers.NewOrderController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	statsCtrl := controllers.NewStatsController(db)
	managerCtrl := controllers.NewManagerController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		// Customer-facing routes, reached from the table QR page.
		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		api.GET("/booths/:booth_id/menus", menuCtrl.ListMenus)
		api.GET("/booths/:booth_id/menus/:menu_id", menuCtrl.GetMenu)
		api.GET("/booths/:booth_id/account", menuCtrl.BoothAccount)
		api.GET("/booths/:booth_id/tables", tableCtrl.ListTables)
		api.GET("/booths/:booth_id/tables/:table_id/orders", tableCtrl.TableOrders)
		api.GET("/tables/:table_id/visits/latest/orders", tableCtrl.LatestVisitOrders)
		// Not under /tables: static "info" would clash with the :table_id
		// wildcard.
		api.GET("/table-info", tableCtrl.TableInfo)
		api.GET("/dev/table-context", tableCtrl.TableContext)

		api.POST("/login", middlewares.NewStrictRateLimiter(), managerCtrl.Login)

		manager := api.Group("/manager", middlewares.AuthMiddleware())
		{
			manager.POST("/orders/:order_id/status/:status", orderCtrl.ChangeStatus)
			manager.POST("/tables/:table_id/close-visit", tableCtrl.CloseVisit)
			manager.POST("/booths/:booth_id/tables", tableCtrl.CreateTable)

			manager.POST("/booths/:booth_id/menus", menuCtrl.CreateMenu)
			manager.PATCH("/booths/:booth_id/menus/:menu_id", menuCtrl.UpdateMenu)
			manager.DELETE("/booths/:booth_id/menus/:menu_id", menuCtrl.DeleteMenu)
			manager.POST("/booths/:booth_id/menus/:menu_id/toggle-available", menuCtrl.ToggleAvailable)

			manager.GET("/booths/:booth_id/stats/today", statsCtrl.TodayStats)
			manager.GET("/booths/:booth_id/stats/date/:date", statsCtrl.SummaryByDate)
			manager.GET("/booths/:booth_id/stats/menu-sales", statsCtrl.MenuSales)
			manager.GET("/booths/:booth_id/menus/:menu_id/metrics/total-orders", statsCtrl.MenuTotalOrders)
			manager.GET("/rankings/menu", statsCtrl.Ranking)
			// Not under /booths: a static "stats" segment there would clash
			// with the :booth_id wildcard in gin's route tree.
			manager.GET("/stats/booths/date/:date", statsCtrl.AllBoothsSummary)
			manager.GET("/order/stats/date/:date", statsCtrl.AllBoothsOrders)
			manager.GET("/tableVisit/stats/date/:date", statsCtrl.VisitDurations)
		}

		admin := api.Group("/admin", middlewares.AuthMiddleware(), middlewares.RequireRole("admin"))
		{
			admin.GET("/booths/:booth_id/manager", managerCtrl.GetManager)
			admin.POST("/booths/:booth_id/manager", managerCtrl.CreateManager)
			admin.PATCH("/booths/:booth_id/manager", managerCtrl.PatchManager)
		}
	}

	return r
}

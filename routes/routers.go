package routes

import (
	"net/http"

	"hotelbook/commands"
	"hotelbook/constants"
	"hotelbook/controllers"
	middlewares "hotelbook/middleware"
	"hotelbook/services"
	"hotelbook/store"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// Deps gom các service đã khởi tạo để gắn vào router
type Deps struct {
	Sessions *store.Store
	Auth     *services.AuthService
	Users    *services.UserService
	Hotels   *services.HotelService
	Bookings *services.BookingService
	Images   *services.ImageService
	Queue    *services.SyncQueue
	Monitor  *services.ConnectivityMonitor
	Registry *commands.Registry
	Melody   *melody.Melody
}

func SetupRoutes(router *gin.Engine, d Deps) {
	authController := controllers.NewAuthController(d.Auth, d.Sessions)
	hotelController := controllers.NewHotelController(d.Hotels, d.Images, d.Queue, d.Monitor)
	bookingController := controllers.NewBookingController(d.Bookings, d.Hotels, d.Sessions)
	userController := controllers.NewUserController(d.Users, d.Queue, d.Monitor)
	syncController := controllers.NewSyncController(d.Queue, d.Monitor, d.Registry)

	authed := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(d.Auth, d.Sessions, roles...)
	}
	staff := []string{constants.RoleManager, constants.RoleAdmin}

	router.Use(middlewares.SessionMiddleware(), middlewares.ErrorHandler())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if d.Melody != nil {
		router.GET("/ws", func(c *gin.Context) {
			d.Melody.HandleRequest(c.Writer, c.Request)
		})
	}

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.DELETE("/auth/logout", authController.Logout)
	v1.GET("/auth/me", authed(), authController.Me)

	v1.GET("/hotels", hotelController.List)
	v1.GET("/hotels/search", hotelController.Search)
	v1.GET("/hotels/:id", hotelController.Get)

	v1.POST("/bookings", bookingController.Create)
	v1.GET("/bookings/me", authed(), bookingController.ListMine)
	v1.GET("/bookings/:id", authed(), bookingController.Get)
	v1.PUT("/bookings/:id/cancel", authed(), bookingController.Cancel)

	manager := v1.Group("/manager", authed(staff...))
	manager.GET("/hotels", hotelController.ListManaged)
	manager.GET("/hotels/:id/bookings", bookingController.ListByHotel)
	manager.POST("/hotels/:id/rooms", hotelController.AddRoom)
	manager.PUT("/hotels/:id/rooms/:roomId", hotelController.UpdateRoom)
	manager.DELETE("/hotels/:id/rooms/:roomId", hotelController.DeleteRoom)
	manager.PUT("/bookings/:id/complete", bookingController.Complete)

	admin := v1.Group("/admin", authed(), middlewares.RoleMiddleware(constants.RoleAdmin))
	admin.GET("/users", userController.List)
	admin.POST("/users", userController.Create)
	admin.GET("/users/:id", userController.Get)
	admin.PUT("/users/:id", userController.Update)
	admin.DELETE("/users/:id", userController.Delete)
	admin.POST("/hotels", hotelController.Create)
	admin.PUT("/hotels/:id", hotelController.Update)
	admin.DELETE("/hotels/:id", hotelController.Delete)
	admin.PUT("/hotels/:id/manager", hotelController.AssignManager)
	admin.POST("/hotels/:id/image", hotelController.UploadImage)
	admin.GET("/bookings", bookingController.ListAll)

	sync := v1.Group("/sync", authed())
	sync.GET("/queue", middlewares.RoleMiddleware(staff...), syncController.Pending)
	sync.POST("/queue", syncController.Enqueue)
	sync.GET("/connectivity", syncController.Connectivity)
	sync.POST("/drain", middlewares.RoleMiddleware(staff...), syncController.Drain)
	sync.PUT("/connectivity", middlewares.RoleMiddleware(constants.RoleAdmin), syncController.SetConnectivity)
}

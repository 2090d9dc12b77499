package portal

import (
	"errors"
	"net/http"

	"github.com/alerta-nampula/alerta/internal/models"
	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/alerta-nampula/alerta/internal/ussd"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up the USSD callback and the public JSON API.
func registerRoutes(router *gin.Engine, st *store.Store, it *ussd.Interpreter) {
	router.POST("/ussd", handleUSSD(it))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/alerts", handlePublicAlerts(st))
	api.GET("/zones", handlePublicZones(st))
	api.GET("/families", handlePublicFamilies(st))
	api.GET("/stats", handlePublicStats(st))
	api.POST("/support", handleCreateSupportOffer(st))
	api.POST("/subscriptions", handleCreateSubscription(st))
}

// handleUSSD adapts one gateway callback to the interpreter. The response is
// always plain text in gateway wire format. Missing session fields terminate
// immediately without touching the store.
func handleUSSD(it *ussd.Interpreter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.PostForm("sessionId")
		phone := c.PostForm("phoneNumber")
		if sessionID == "" || phone == "" {
			c.String(http.StatusOK, "END Sessao invalida.")
			return
		}

		path := ussd.SplitPath(c.PostForm("text"))
		screen := it.Handle(path, phone)
		c.String(http.StatusOK, screen.Render())
	}
}

func handlePublicAlerts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := st.ActiveAlerts(0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, alerts)
	}
}

func handlePublicZones(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := st.ActiveZones()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, zones)
	}
}

func handlePublicFamilies(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fams, err := st.Families()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, fams)
	}
}

func handlePublicStats(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := st.BuildStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

type supportOfferRequest struct {
	Kind          string `json:"kind" binding:"required"`
	Quantity      string `json:"quantity"`
	DeliveryPlace string `json:"delivery_place"`
	Contact       string `json:"contact" binding:"required"`
}

func handleCreateSupportOffer(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req supportOfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		offer := &models.SupportOffer{
			Kind:          req.Kind,
			Quantity:      req.Quantity,
			DeliveryPlace: req.DeliveryPlace,
			Contact:       req.Contact,
		}
		if err := st.CreateSupportOffer(offer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, offer)
	}
}

type subscriptionRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Methods    string `json:"methods"`
	AlertKinds string `json:"alert_kinds"`
}

func handleCreateSubscription(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sub := &models.Subscription{
			Name:       req.Name,
			Phone:      req.Phone,
			Email:      req.Email,
			Methods:    req.Methods,
			AlertKinds: req.AlertKinds,
		}
		err := st.CreateSubscription(sub)
		if errors.Is(err, store.ErrDuplicateSubscription) {
			c.JSON(http.StatusConflict, gin.H{"error": "phone or email already subscribed"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

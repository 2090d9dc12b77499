package portal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alerta-nampula/alerta/internal/models"
	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/gin-gonic/gin"
)

const adminContextKey = "admin"

// registerAdminRoutes sets up the authenticated back-office API. All routes
// require HTTP Basic credentials matching an admin account; settings and
// account management additionally require master level.
func registerAdminRoutes(router *gin.Engine, st *store.Store) {
	admin := router.Group("/admin/api", basicAuth(st))

	admin.GET("/alerts", handleAdminAlerts(st))
	admin.POST("/alerts", handleCreateAlert(st))
	admin.PUT("/alerts/:id", handleUpdateAlert(st))
	admin.PUT("/alerts/:id/active", handleSetAlertActive(st))
	admin.DELETE("/alerts/:id", handleDeleteAlert(st))

	admin.GET("/zones", handleAdminZones(st))
	admin.POST("/zones", handleCreateZone(st))
	admin.PUT("/zones/:id", handleUpdateZone(st))
	admin.PUT("/zones/:id/active", handleSetZoneActive(st))
	admin.DELETE("/zones/:id", handleDeleteZone(st))

	admin.GET("/families", handleAdminFamilies(st))
	admin.POST("/families", handleCreateFamily(st))
	admin.PUT("/families/:id", handleUpdateFamily(st))
	admin.DELETE("/families/:id", handleDeleteFamily(st))

	admin.GET("/help", handleAdminHelp(st))
	admin.PUT("/help/:id/status", handleSetHelpStatus(st))

	admin.GET("/volunteers", handleAdminVolunteers(st))
	admin.GET("/subscriptions", handleAdminSubscriptions(st))

	admin.GET("/offers", handleAdminOffers(st))
	admin.PUT("/offers/:id/status", handleSetOfferStatus(st))
	admin.DELETE("/offers/:id", handleDeleteOffer(st))

	master := admin.Group("", requireMaster())
	master.GET("/settings", handleGetSettings(st))
	master.PUT("/settings", handleUpdateSettings(st))
	master.GET("/admins", handleAdminUsers(st))
	master.POST("/admins", handleCreateAdmin(st))
	master.DELETE("/admins/:id", handleDeleteAdmin(st))
}

// basicAuth authenticates the request against the admin table and stores the
// account in the request context.
func basicAuth(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if ok {
			admin, err := st.Authenticate(email, password)
			if err == nil && admin != nil {
				c.Set(adminContextKey, admin)
				c.Next()
				return
			}
		}
		c.Header("WWW-Authenticate", `Basic realm="alerta admin"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// requireMaster gates master-only routes.
func requireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := currentAdmin(c)
		if admin == nil || admin.Level != models.AdminMaster {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "master level required"})
			return
		}
		c.Next()
	}
}

func currentAdmin(c *gin.Context) *models.AdminUser {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil
	}
	admin, _ := v.(*models.AdminUser)
	return admin
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// writeStoreError maps store errors to HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete own account"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --- alerts ---

func handleAdminAlerts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := st.Alerts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, alerts)
	}
}

type alertRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

func handleCreateAlert(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req alertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		alert := &models.Alert{
			Title:    req.Title,
			Category: models.AlertCategory(req.Category),
			Body:     req.Body,
			Active:   true,
		}
		if err := st.CreateAlert(alert); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, alert)
	}
}

func handleUpdateAlert(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req alertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.UpdateAlert(id, req.Title, models.AlertCategory(req.Category), req.Body); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func handleSetAlertActive(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req activeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.SetAlertActive(id, *req.Active); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleDeleteAlert(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := st.DeleteAlert(id); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// --- zones ---

func handleAdminZones(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := st.Zones()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, zones)
	}
}

type zoneRequest struct {
	Name      string `json:"name" binding:"required"`
	Capacity  int    `json:"capacity"`
	Resources string `json:"resources"`
}

func handleCreateZone(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req zoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zone := &models.SafeZone{
			Name:      req.Name,
			Capacity:  req.Capacity,
			Resources: req.Resources,
			Active:    true,
		}
		if err := st.CreateZone(zone); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, zone)
	}
}

func handleUpdateZone(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req zoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.UpdateZone(id, req.Name, req.Capacity, req.Resources); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleSetZoneActive(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req activeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.SetZoneActive(id, *req.Active); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleDeleteZone(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := st.DeleteZone(id); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// --- families ---

func handleAdminFamilies(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fams, err := st.Families()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, fams)
	}
}

type familyRequest struct {
	Neighborhood string `json:"neighborhood" binding:"required"`
	People       int    `json:"people" binding:"required"`
	Situation    string `json:"situation" binding:"required"`
	Shelter      string `json:"shelter" binding:"required"`
	Needs        string `json:"needs"`
}

func (r *familyRequest) toModel() *models.DisplacedFamily {
	return &models.DisplacedFamily{
		Neighborhood: r.Neighborhood,
		People:       r.People,
		Situation:    r.Situation,
		Shelter:      r.Shelter,
		Needs:        r.Needs,
	}
}

func handleCreateFamily(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req familyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fam := req.toModel()
		if err := st.CreateFamily(fam); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, fam)
	}
}

func handleUpdateFamily(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req familyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.UpdateFamily(id, req.toModel()); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleDeleteFamily(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := st.DeleteFamily(id); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// --- help requests ---

func handleAdminHelp(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqs, err := st.HelpRequests(models.HelpStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, reqs)
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func handleSetHelpStatus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.SetHelpRequestStatus(id, models.HelpStatus(req.Status)); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// --- volunteers, subscriptions, offers ---

func handleAdminVolunteers(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		vols, err := st.Volunteers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, vols)
	}
}

func handleAdminSubscriptions(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := st.Subscriptions()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

func handleAdminOffers(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers, err := st.SupportOffers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}

func handleSetOfferStatus(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.SetOfferStatus(id, models.OfferStatus(req.Status)); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleDeleteOffer(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := st.DeleteOffer(id); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// --- settings and admin accounts (master only) ---

func handleGetSettings(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := st.Settings()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

func handleUpdateSettings(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]string
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.UpdateSettings(values); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func handleAdminUsers(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := st.AdminUsers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		// Never serialize password hashes.
		type view struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Level string `json:"level"`
		}
		out := make([]view, 0, len(admins))
		for _, a := range admins {
			out = append(out, view{ID: a.ID, Name: a.Name, Email: a.Email, Level: string(a.Level)})
		}
		c.JSON(http.StatusOK, out)
	}
}

type adminCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Level    string `json:"level"`
}

func handleCreateAdmin(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		admin, err := st.CreateAdmin(req.Name, req.Email, req.Password, models.AdminLevel(req.Level))
		if err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": admin.ID, "email": admin.Email})
	}
}

func handleDeleteAdmin(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		actor := currentAdmin(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err := st.DeleteAdmin(id, actor.ID); err != nil {
			writeStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

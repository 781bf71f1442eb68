package handlers

import (
	"net/http"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// groupHandler serves both staged group kinds; the kind is fixed per route group.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
	kind         domain.GroupKind
}

func registerGroupRoutes(rg *gin.RouterGroup, gs portssvc.GroupSvcFacade) {
	for path, kind := range map[string]domain.GroupKind{
		"/events":  domain.EventGroup,
		"/futures": domain.FutureGroup,
	} {
		h := &groupHandler{groupService: gs, kind: kind}

		groups := rg.Group(path)
		{
			groups.GET("", h.listGroups)
			groups.POST("", h.createGroup)
			groups.GET("/:groupID", h.getGroup)
			groups.DELETE("/:groupID", h.discardGroup)
			groups.POST("/:groupID/entries", h.addEntry)
			groups.DELETE("/:groupID/entries/:entryID", h.removeEntry)
			groups.POST("/:groupID/commit", h.commit)
		}
	}
}

// listGroups godoc
// @Summary List staged events or future groups
// @Tags groups
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Security BearerAuth
// @Router /events [get]
// @Router /futures [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	groups, err := h.groupService.ListGroups(c.Request.Context(), id, h.kind)
	if err != nil {
		respondError(c, err, "Failed to list groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponses(groups))
}

// createGroup godoc
// @Summary Create a staged group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.GroupRequest true "Group"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events [post]
// @Router /futures [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.GroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.groupService.CreateGroup(c.Request.Context(), id, h.kind, req.ToInput())
	if err != nil {
		respondError(c, err, "Failed to create group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(*group))
}

// getGroup godoc
// @Summary Get a staged group
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{groupID} [get]
// @Router /futures/{groupID} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	group, err := h.groupService.GetGroup(c.Request.Context(), id, h.kind, c.Param("groupID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve group")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(*group))
}

// discardGroup godoc
// @Summary Discard a staged group
// @Description Drops the group and its entries without touching the ledger
// @Tags groups
// @Param groupID path string true "Group ID"
// @Success 204
// @Security BearerAuth
// @Router /events/{groupID} [delete]
// @Router /futures/{groupID} [delete]
func (h *groupHandler) discardGroup(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.groupService.DiscardGroup(c.Request.Context(), id, h.kind, c.Param("groupID")); err != nil {
		respondError(c, err, "Failed to discard group")
		return
	}
	c.Status(http.StatusNoContent)
}

// addEntry godoc
// @Summary Stage an entry
// @Description Adds an entry to the group. Staged entries do not affect balances.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param entry body dto.TransactionRequest true "Entry"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{groupID}/entries [post]
// @Router /futures/{groupID}/entries [post]
func (h *groupHandler) addEntry(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid entry")
		return
	}
	entry, err := h.groupService.AddEntry(c.Request.Context(), id, h.kind, c.Param("groupID"), in)
	if err != nil {
		respondError(c, err, "Failed to add entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*entry))
}

// removeEntry godoc
// @Summary Remove a staged entry
// @Tags groups
// @Param groupID path string true "Group ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{groupID}/entries/{entryID} [delete]
// @Router /futures/{groupID}/entries/{entryID} [delete]
func (h *groupHandler) removeEntry(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.groupService.RemoveEntry(c.Request.Context(), id, h.kind, c.Param("groupID"), c.Param("entryID")); err != nil {
		respondError(c, err, "Failed to remove entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// commit godoc
// @Summary Commit a staged group
// @Description Events are recorded as one net transaction. Future groups are recorded entry by entry, each retagged to the target jar.
// @Description The target applies to both kinds; leaving it out records into AUTO.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID"
// @Param commit body dto.CommitGroupRequest false "Target jar, AUTO when omitted"
// @Success 200 {object} dto.CommittedGroupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /events/{groupID}/commit [post]
// @Router /futures/{groupID}/commit [post]
func (h *groupHandler) commit(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CommitGroupRequest
	// The body is optional; no target means AUTO.
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	target, err := req.Target()
	if err != nil {
		respondError(c, err, "Invalid target jar")
		return
	}
	committed, err := h.groupService.Commit(c.Request.Context(), id, h.kind, c.Param("groupID"), target)
	if err != nil {
		respondError(c, err, "Failed to commit group")
		return
	}
	middleware.TrackEvent(c, "group_committed", map[string]any{
		"kind":         string(h.kind),
		"target":       domain.JarLabel(target),
		"transactions": len(committed.Transactions),
	})
	c.JSON(http.StatusOK, dto.ToCommittedGroupResponse(*committed))
}

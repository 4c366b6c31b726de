package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/entities"
)

// OrganisationsController serves organisation creation, lookup and membership.
type OrganisationsController struct {
	organisations OrganisationService
}

func NewOrganisationsController(organisations OrganisationService) *OrganisationsController {
	return &OrganisationsController{organisations: organisations}
}

// CreateOrganisationRequest is the body of POST /api/organisations.
type CreateOrganisationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// AddUserRequest is the body of POST /api/organisation/:orgId/users.
type AddUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type organisationList struct {
	Organisations []entities.Organisation `json:"organisations"`
}

type memberList struct {
	Members []entities.Membership `json:"members"`
}

// Create handles POST /api/organisations.
func (oc *OrganisationsController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrganisationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := oc.organisations.CreateOrganisation(c.Request.Context(), user, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "create organisation")
		return
	}
	respondSuccess(c, http.StatusCreated, "Organisation created successfully", org)
}

// List handles GET /api/organisations.
func (oc *OrganisationsController) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orgs, err := oc.organisations.ListOrganisations(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "list organisations")
		return
	}
	respondSuccess(c, http.StatusOK, "Organisations data retrieved successfully", organisationList{Organisations: orgs})
}

// Get handles GET /api/organisation/:orgId.
func (oc *OrganisationsController) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	org, err := oc.organisations.GetOrganisation(c.Request.Context(), user, c.Param("orgId"))
	if err != nil {
		respondServiceError(c, err, "get organisation")
		return
	}
	respondSuccess(c, http.StatusOK, "Organisation data retrieved successfully", org)
}

// AddUser handles POST /api/organisation/:orgId/users.
func (oc *OrganisationsController) AddUser(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req AddUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := oc.organisations.AddMember(c.Request.Context(), c.Param("orgId"), req.UserID); err != nil {
		respondServiceError(c, err, "add organisation member")
		return
	}
	respondSuccess(c, http.StatusOK, "User added to organisation successfully", nil)
}

// ListUsers handles GET /api/organisation/:orgId/users.
func (oc *OrganisationsController) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	members, err := oc.organisations.ListMembers(c.Request.Context(), user, c.Param("orgId"))
	if err != nil {
		respondServiceError(c, err, "list organisation members")
		return
	}
	respondSuccess(c, http.StatusOK, "Organisation members retrieved successfully", memberList{Members: members})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UsersController struct {
	directory UserDirectory
}

func NewUsersController(directory UserDirectory) *UsersController {
	return &UsersController{directory: directory}
}

// Me handles GET /api/user.
func (uc *UsersController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, "User details fetched successfully", user)
}

// GetByID handles GET /api/users/:id. Only users sharing an organisation
// with the caller are visible.
func (uc *UsersController) GetByID(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := uc.directory.GetVisibleUser(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	respondSuccess(c, http.StatusOK, "User details fetched successfully", user)
}

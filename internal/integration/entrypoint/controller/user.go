package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/project-ledger/backend/internal/application/usecase/auth"
	domainerror "github.com/project-ledger/backend/internal/domain/error"
	"github.com/project-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/project-ledger/backend/internal/integration/entrypoint/middleware"
)

// UserController handles endpoints about the signed-in user.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(getCurrentUserUseCase *auth.GetCurrentUserUseCase) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	user, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"canvasChat/internal/errs"
	"canvasChat/internal/models"
	"canvasChat/internal/msgs"
	"canvasChat/internal/services"
	"canvasChat/internal/utils"
)

type RestHandler struct {
	boardService       *services.BoardService
	fileManagerService *services.FileManagerService
}

func NewRestHandler(boardService *services.BoardService, fileManagerService *services.FileManagerService) *RestHandler {
	return &RestHandler{
		boardService:       boardService,
		fileManagerService: fileManagerService,
	}
}

func (rh *RestHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) GetBoardShapes(ctx *gin.Context) {
	boardID, err := utils.ParseUintParam(ctx.Param("boardId"))
	if err != nil || boardID == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidBoardId},
		})
		return
	}

	shapes, err := rh.boardService.GetBoardShapes(boardID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    shapes,
	})
}

// SyncBoardShapes replaces the persisted shape set with the one the client
// sends: shapes in the body are upserted, everything else on the board is
// deleted.
func (rh *RestHandler) SyncBoardShapes(ctx *gin.Context) {
	boardID, err := utils.ParseUintParam(ctx.Param("boardId"))
	if err != nil || boardID == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidBoardId},
		})
		return
	}

	var shapes []models.Shape
	if err := ctx.BindJSON(&shapes); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	if err := rh.boardService.SyncShapes(ctx.Request.Context(), boardID, shapes); err != nil {
		log.Printf("Error syncing shapes for board %v: %v", boardID, err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
	})
}

func (rh *RestHandler) UploadReferenceImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidFile},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidFile},
		})
		return
	}
	defer file.Close()

	fileName := uuid.NewString() + "-" + fileHeader.Filename
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := rh.fileManagerService.UploadReferenceImage(fileName, file, fileHeader.Size, contentType)
	if err != nil {
		log.Printf("Error uploading reference image: %v", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrFileUploadFailed},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgFileUploadedSuccessfuly,
		Data:    map[string]string{"url": url},
	})
}

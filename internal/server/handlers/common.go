// Package handlers adapts HTTP requests onto the bean and roast
// repositories. Form submissions redirect back to the relevant view;
// AJAX calls receive a JSON success envelope.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mcharron/roastlog/internal/apierror"
)

// bindObjectID extracts and validates a 24-hex id path parameter. A
// malformed token always fails the request; it is never a silent no-op.
func bindObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.ErrInvalidReference.Error()))
		return primitive.NilObjectID, false
	}
	return id, true
}

func isJSONRequest(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}

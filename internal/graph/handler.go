package graph

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/storage"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves the GraphQL endpoint. It accepts standard JSON POST bodies
// and multipart form bodies following the GraphQL multipart request
// convention for file uploads.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlRequest
		var err error
		if c.ContentType() == "multipart/form-data" {
			req, err = parseMultipartRequest(c)
		} else {
			err = c.ShouldBindJSON(&req)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{
					"message":    "invalid request body",
					"extensions": gin.H{"code": apperrors.ErrInvalidInput.Code},
				}},
			})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})
		c.JSON(http.StatusOK, formatResult(result))
	}
}

func parseMultipartRequest(c *gin.Context) (graphqlRequest, error) {
	var req graphqlRequest

	form, err := c.MultipartForm()
	if err != nil {
		return req, err
	}

	operations := form.Value["operations"]
	if len(operations) == 0 {
		return req, errors.New("missing operations field")
	}
	if err := json.Unmarshal([]byte(operations[0]), &req); err != nil {
		return req, err
	}
	if req.Variables == nil {
		req.Variables = map[string]interface{}{}
	}

	fileMap := form.Value["map"]
	if len(fileMap) == 0 {
		return req, nil
	}
	var paths map[string][]string
	if err := json.Unmarshal([]byte(fileMap[0]), &paths); err != nil {
		return req, err
	}

	for key, targets := range paths {
		headers := form.File[key]
		if len(headers) == 0 {
			return req, errors.New("missing file for map entry " + key)
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return req, err
		}
		upload := &storage.Upload{
			File:        file,
			Size:        header.Size,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
		for _, target := range targets {
			if err := setVariable(req.Variables, target, upload); err != nil {
				return req, err
			}
		}
	}
	return req, nil
}

// setVariable places an upload at a dotted path like "variables.data.avatar".
func setVariable(variables map[string]interface{}, path string, value interface{}) error {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "variables" {
		return errors.New("invalid variable path " + path)
	}
	current := variables
	for _, part := range parts[1 : len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func formatResult(result *graphql.Result) gin.H {
	response := gin.H{"data": result.Data}
	if len(result.Errors) == 0 {
		return response
	}

	formatted := make([]gin.H, 0, len(result.Errors))
	for _, ferr := range result.Errors {
		message := ferr.Message
		extensions := gin.H{"code": apperrors.ErrInternalServer.Code}

		if appErr := recoverAppError(ferr); appErr != nil {
			message = appErr.Message
			extensions["code"] = appErr.Code
			if appErr.Internal != nil {
				logger.Get().Errorw("graphql resolver error",
					"code", appErr.Code,
					"error", appErr.Internal,
				)
			}
		} else if ferr.OriginalError() == nil {
			// Query-level error (syntax, validation, unknown field).
			extensions["code"] = apperrors.ErrInvalidInput.Code
		} else {
			logger.Get().Errorw("graphql resolver error", "error", ferr.OriginalError())
		}

		entry := gin.H{"message": message, "extensions": extensions}
		if len(ferr.Locations) > 0 {
			entry["locations"] = ferr.Locations
		}
		if len(ferr.Path) > 0 {
			entry["path"] = ferr.Path
		}
		formatted = append(formatted, entry)
	}
	response["errors"] = formatted
	return response
}

func recoverAppError(ferr gqlerrors.FormattedError) *apperrors.AppError {
	err := ferr.OriginalError()
	for err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		gqlErr, ok := err.(*gqlerrors.Error)
		if !ok {
			return nil
		}
		err = gqlErr.OriginalError
	}
	return nil
}

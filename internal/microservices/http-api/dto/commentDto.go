package dto

import (
	"time"

	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/search"
)

// CreateCommentDTO for creating a comment; length is checked after trimming
type CreateCommentDTO struct {
	Body string `json:"body" binding:"required,notblank"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID         int64     `json:"id"`
	ComboID    int64     `json:"comboId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:         comment.ID,
		ComboID:    comment.ComboID,
		UserID:     comment.UserID,
		AuthorName: comment.User.Name,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	}
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total int64, page, pageSize int) *PaginatedCommentResponse {
	if data == nil {
		data = []CommentResponse{}
	}
	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: search.Pages(total, pageSize),
	}
}

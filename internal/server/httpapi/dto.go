package httpapi

import (
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

const dueDateLayout = "2006-01-02"

type registerRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	UserName  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type bucketRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type addItemRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	DueDate     string `json:"due_date" form:"due_date"`
}

type itemView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"is_complete"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
}

// itemResult is the standalone item payload; unlike the nested view it
// carries no created_at.
type itemResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsComplete  bool   `json:"is_complete"`
	DueDate     string `json:"due_date"`
}

type bucketView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Items       []itemView `json:"items"`
}

type bucketResult struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toItemView(item *models.BucketItem) itemView {
	return itemView{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		IsComplete:  item.IsComplete,
		DueDate:     item.DueDate.Format(dueDateLayout),
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

func toItemResult(item *models.BucketItem) itemResult {
	return itemResult{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		IsComplete:  item.IsComplete,
		DueDate:     item.DueDate.Format(dueDateLayout),
	}
}

func toBucketView(b *models.Bucket) bucketView {
	items := make([]itemView, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, toItemView(item))
	}
	return bucketView{ID: b.ID, Name: b.Name, Description: b.Description, Items: items}
}

package list_sessions

import (
	"net/url"

	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

// ToServiceRequest собирает фильтр из query параметров
// Отсутствующий или пустой параметр не участвует в фильтрации
func ToServiceRequest(query url.Values) *models.ListSessionsRequest {
	return &models.ListSessionsRequest{
		Date:     optional(query, "date"),
		Trainer:  optional(query, "trainer"),
		Activity: optional(query, "activity"),
		Location: optional(query, "location"),
	}
}

func optional(query url.Values, key string) *string {
	v := query.Get(key)
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}

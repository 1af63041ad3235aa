package usecase

import (
	"fmt"
	"strings"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

// DefaultMaxNotifications caps the messages queued per run
const DefaultMaxNotifications = 100

const notificationTemplate = "Olá, temos uma boa notícia! Seu exame de %s solicitado pelo Doutor(a) %s " +
	"já está agendado com a gente, e estamos muito felizes em cuidar de você com todo o carinho e a " +
	"qualidade que você merece. Não deixe para depois, venha fazer seu exame com quem realmente se " +
	"importa com a sua saúde! Qualquer dúvida, é só nos chamar!"

// BuildNotificationBody renders the patient message for an exam category
func BuildNotificationBody(category, requester string) string {
	return fmt.Sprintf(notificationTemplate, category, strings.TrimSpace(requester))
}

// BuildNotifications creates one pending notification per image-exam record,
// in record order, stopping at limit. limit <= 0 means no cap.
func BuildNotifications(records []*entity.PredictionRecord, limit int) []*entity.Notification {
	var out []*entity.Notification
	for _, rec := range records {
		if !rec.IsExam || rec.Label == entity.NotImageExam {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, entity.NewNotification(rec, BuildNotificationBody(rec.Label, rec.Requester)))
	}
	return out
}

package jobs

const (
	TaskGeneratePlan = "plan:generate"
	QueuePlans       = "plans"
)

type GeneratePlanPayload struct {
	PlanID string `json:"plan_id"`
}

package apierrors

const (
	MsgUnauthorized = "unauthorized"
	MsgForbidden    = "forbidden"

	MsgInvalidTaskID          = "invalidTaskID"
	MsgInvalidTaskPayload     = "invalidTaskPayload"
	MsgTaskNotFound           = "taskNotFound"
	MsgDependencyNotFound     = "dependencyNotFound"
	MsgDependencyNotSatisfied = "dependencyNotSatisfied"
	MsgFailListTasks          = "failListTasks"
	MsgFailCreateTask         = "failCreateTask"
	MsgFailUpdateTask         = "failUpdateTask"
	MsgFailDeleteTask         = "failDeleteTask"
	MsgFailReorderTasks       = "failReorderTasks"
	MsgFailClearCompleted     = "failClearCompleted"
	MsgFailTaskStats          = "failTaskStats"

	MsgInvalidProjectID      = "invalidProjectID"
	MsgInvalidProjectPayload = "invalidProjectPayload"
	MsgProjectNotFound       = "projectNotFound"
	MsgFailListProjects      = "failListProjects"
	MsgFailCreateProject     = "failCreateProject"
	MsgFailUpdateProject     = "failUpdateProject"
	MsgFailDeleteProject     = "failDeleteProject"
)

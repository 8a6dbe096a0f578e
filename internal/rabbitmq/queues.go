package rabbitmq

const (
	USERS_CREATED_EXCHANGE = "users.created"
	USERS_UPDATE_EXCHANGE  = "users.updates"
)

package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 状态存储的键，对应原先浏览器本地存储里的几项
const (
	KeyLearningGoals = "learning_goals"
	KeyLearningPlan  = "learning_plan"
	KeyUserSession   = "user_session"
	KeyAccount       = "account"
)

const (
	PersistenceMemory = "memory"
	PersistenceRedis  = "redis"
	PersistenceMySQL  = "mysql"
)

// 前端路由，用于前置条件缺失时的跳转提示
const (
	RouteLogin     = "/login"
	RouteGoals     = "/dashboard/goals"
	RouteDashboard = "/dashboard"
)

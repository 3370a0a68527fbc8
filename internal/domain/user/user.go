package user

import "time"

// Role values. There is no demote path, a user only ever moves up.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            string        `bson:"_id" json:"id"`
	Email         string        `bson:"email" json:"email"`
	PasswordHash  string        `bson:"password_hash" json:"-"` // never expose hash in JSON
	Role          string        `bson:"role" json:"role"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	DashboardData DashboardData `bson:"dashboard_data" json:"dashboardData"`
}

// DashboardData is the per-user blob, replaced as a unit on every update.
type DashboardData struct {
	TotalUsers    float64 `bson:"total_users" json:"totalUsers"`
	Revenue       float64 `bson:"revenue" json:"revenue"`
	ActiveCourses float64 `bson:"active_courses" json:"activeCourses"`
	PendingTasks  float64 `bson:"pending_tasks" json:"pendingTasks"`
}

// Summary is the projected shape the admin user list returns.
type Summary struct {
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func (u User) Summarize() Summary {
	return Summary{
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

package rbac

// Default policy: admins manage everything, students only take
// quizzes and read their own submission.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:view",
		"answer:save",
		"quiz:submit",
		"submission:view-own",
	},
	"admin": {
		"*", // everything
	},
}

package fixtures

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/project"
)

// Projects returns three demo projects per manager
func Projects() []project.Project {
	return []project.Project{
		{ID: "proj-001", Name: "User Authentication System", TeamID: "mgr-001", Description: "Implement OAuth 2.0 and multi-factor authentication"},
		{ID: "proj-002", Name: "Mobile App API", TeamID: "mgr-001", Description: "RESTful API development for mobile application"},
		{ID: "proj-003", Name: "Performance Optimization", TeamID: "mgr-001", Description: "Database query optimization and caching implementation"},
		{ID: "proj-004", Name: "Payment Integration", TeamID: "mgr-002", Description: "Stripe and PayPal payment processing integration"},
		{ID: "proj-005", Name: "Admin Dashboard", TeamID: "mgr-002", Description: "React-based administrative interface"},
		{ID: "proj-006", Name: "Email Service", TeamID: "mgr-002", Description: "Automated email notifications and templates"},
		{ID: "proj-007", Name: "Data Pipeline", TeamID: "mgr-003", Description: "ETL pipeline for analytics and reporting"},
		{ID: "proj-008", Name: "Machine Learning Model", TeamID: "mgr-003", Description: "Recommendation engine development"},
		{ID: "proj-009", Name: "API Gateway", TeamID: "mgr-003", Description: "Microservices API gateway implementation"},
		{ID: "proj-010", Name: "Frontend Redesign", TeamID: "mgr-004", Description: "User interface modernization project"},
		{ID: "proj-011", Name: "Mobile App Development", TeamID: "mgr-004", Description: "React Native cross-platform mobile application"},
		{ID: "proj-012", Name: "Accessibility Improvements", TeamID: "mgr-004", Description: "WCAG compliance and screen reader support"},
		{ID: "proj-013", Name: "Cloud Migration", TeamID: "mgr-005", Description: "AWS infrastructure migration and optimization"},
		{ID: "proj-014", Name: "Security Audit", TeamID: "mgr-005", Description: "Comprehensive security review and improvements"},
		{ID: "proj-015", Name: "Monitoring System", TeamID: "mgr-005", Description: "Application performance monitoring setup"},
		{ID: "proj-016", Name: "Search Functionality", TeamID: "mgr-006", Description: "Elasticsearch-based search implementation"},
		{ID: "proj-017", Name: "Reporting Dashboard", TeamID: "mgr-006", Description: "Real-time analytics and reporting interface"},
		{ID: "proj-018", Name: "Content Management", TeamID: "mgr-006", Description: "CMS for dynamic content management"},
		{ID: "proj-019", Name: "Integration Platform", TeamID: "mgr-007", Description: "Third-party service integration framework"},
		{ID: "proj-020", Name: "Testing Automation", TeamID: "mgr-007", Description: "Automated testing pipeline and CI/CD improvements"},
		{ID: "proj-021", Name: "Documentation System", TeamID: "mgr-007", Description: "Technical documentation platform development"},
		{ID: "proj-022", Name: "Backup System", TeamID: "mgr-008", Description: "Automated backup and disaster recovery solution"},
		{ID: "proj-023", Name: "Chat Integration", TeamID: "mgr-008", Description: "Real-time messaging and notification system"},
		{ID: "proj-024", Name: "Workflow Automation", TeamID: "mgr-008", Description: "Business process automation and orchestration"},
	}
}

package fixtures

import (
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
)

// DemoReports returns the seeded reports for 2025-09-10 and 2025-09-11.
// They are read-only and never written to storage.
func DemoReports() []report.Report {
	return []report.Report{
		{
			ID:        "rpt-001",
			UserID:    "eng-001",
			Date:      "2025-09-11",
			Content:   "Completed OAuth 2.0 integration testing with Google and GitHub providers. Fixed 3 edge cases in token refresh logic. Started work on multi-factor authentication flow. Need design review for the SMS verification UI component by Friday.",
			Summary:   strPtr("OAuth integration complete, MFA UI design review needed"),
			CreatedAt: "2025-09-11T08:30:00Z",
			UpdatedAt: "2025-09-11T08:30:00Z",
		},
		{
			ID:        "rpt-002",
			UserID:    "eng-002",
			Date:      "2025-09-11",
			Content:   "Refactored user authentication middleware for better performance. Reduced average response time by 40ms. Discovered a potential security vulnerability in password reset flow - created ticket AUTH-245 to address. Planning to pair with James tomorrow on API rate limiting.",
			Summary:   strPtr("Auth middleware optimized, security issue identified and ticketed"),
			CreatedAt: "2025-09-11T09:15:00Z",
			UpdatedAt: "2025-09-11T09:15:00Z",
		},
		{
			ID:        "rpt-003",
			UserID:    "eng-003",
			Date:      "2025-09-11",
			Content:   "Database migration scripts ready for the authentication schema changes. Tested on staging environment successfully. Performance benchmarks show 15% improvement in query speed. Will coordinate with DevOps team for production deployment next Tuesday.",
			Summary:   strPtr("DB migration ready, 15% performance improvement validated"),
			CreatedAt: "2025-09-11T10:00:00Z",
			UpdatedAt: "2025-09-11T10:00:00Z",
		},
		{
			ID:        "rpt-004",
			UserID:    "eng-004",
			Date:      "2025-09-11",
			Content:   "Stripe payment integration is 90% complete. Webhook handlers for payment success/failure events are working. Still debugging the subscription renewal flow - getting inconsistent responses from Stripe API. Meeting with their support team tomorrow.",
			Summary:   strPtr("Stripe integration nearly done, subscription renewal debugging in progress"),
			CreatedAt: "2025-09-11T08:45:00Z",
			UpdatedAt: "2025-09-11T08:45:00Z",
		},
		{
			ID:        "rpt-005",
			UserID:    "eng-005",
			Date:      "2025-09-11",
			Content:   "Admin dashboard React components are ready for review. Implemented data tables, user management, and analytics widgets. Used TypeScript throughout with 95% coverage. Need feedback on the chart library choice - considering Chart.js vs Recharts.",
			Summary:   strPtr("Admin dashboard components ready, chart library feedback needed"),
			CreatedAt: "2025-09-11T11:20:00Z",
			UpdatedAt: "2025-09-11T11:20:00Z",
		},
		{
			ID:        "rpt-006",
			UserID:    "eng-013",
			Date:      "2025-09-11",
			Content:   "AWS migration preparation going well. Containerized 3 microservices using Docker. Set up ECS clusters and load balancers. Estimated cost savings of 30% compared to current infrastructure. Security group configurations need final review.",
			Summary:   strPtr("AWS migration on track, 30% cost savings projected"),
			CreatedAt: "2025-09-11T09:30:00Z",
			UpdatedAt: "2025-09-11T09:30:00Z",
		},
		{
			ID:        "rpt-101",
			UserID:    "mgr-001",
			Date:      "2025-09-11",
			Content:   "Authentication team making excellent progress. OAuth integration completed with Google/GitHub, MFA flow in development. Discovered security vulnerability in password reset - being addressed. Database migration ready with 15% performance improvement. Team is on track for Q4 delivery.",
			Summary:   strPtr("Authentication project on track, security issue identified and being resolved"),
			CreatedAt: "2025-09-11T16:00:00Z",
			UpdatedAt: "2025-09-11T16:00:00Z",
		},
		{
			ID:        "rpt-102",
			UserID:    "mgr-002",
			Date:      "2025-09-11",
			Content:   "Payments team nearly finished Stripe integration - subscription flow debugging in progress. Admin dashboard components ready for review, excellent TypeScript coverage. Team requesting decision on chart library. Overall project 80% complete, on budget.",
			Summary:   strPtr("Payments integration 80% complete, admin dashboard ready for review"),
			CreatedAt: "2025-09-11T16:15:00Z",
			UpdatedAt: "2025-09-11T16:15:00Z",
		},
		{
			ID:        "rpt-103",
			UserID:    "mgr-005",
			Date:      "2025-09-11",
			Content:   "Cloud migration team ahead of schedule. Successfully containerized 3 microservices with proper ECS setup. Projecting 30% cost savings versus current infrastructure. Security configurations under final review. Migration pilot scheduled for next month.",
			Summary:   strPtr("Cloud migration ahead of schedule with significant cost savings"),
			CreatedAt: "2025-09-11T16:30:00Z",
			UpdatedAt: "2025-09-11T16:30:00Z",
		},
		{
			ID:        "rpt-201",
			UserID:    "dir-001",
			Date:      "2025-09-11",
			Content:   "Engineering teams under my oversight are performing well. Authentication and payments projects both on track for Q4 delivery. Key wins: OAuth integration complete, 15% DB performance improvement, admin dashboard ready. One security issue identified and being addressed promptly. Team morale high.",
			Summary:   strPtr("Engineering teams on track, key milestones achieved, security issue being addressed"),
			CreatedAt: "2025-09-11T17:00:00Z",
			UpdatedAt: "2025-09-11T17:00:00Z",
		},
		{
			ID:        "rpt-202",
			UserID:    "dir-003",
			Date:      "2025-09-11",
			Content:   "Cloud infrastructure initiatives showing strong progress. Migration project ahead of schedule with 30% projected cost savings. Team has successfully modernized deployment pipeline. Security reviews proceeding smoothly. Confident in meeting all Q4 infrastructure goals.",
			Summary:   strPtr("Infrastructure projects exceeding expectations with significant cost benefits"),
			CreatedAt: "2025-09-11T17:15:00Z",
			UpdatedAt: "2025-09-11T17:15:00Z",
		},
		{
			ID:        "rpt-301",
			UserID:    "vp-001",
			Date:      "2025-09-11",
			Content:   "Product engineering division maintaining strong delivery momentum. Authentication, payments, and admin systems all progressing well toward Q4 targets. Proactive security practices paying off - team caught and is resolving potential vulnerability. Database optimizations delivering measurable performance gains. Team leads demonstrating excellent technical judgment.",
			Summary:   strPtr("Product engineering on track with strong security practices and performance improvements"),
			CreatedAt: "2025-09-11T18:00:00Z",
			UpdatedAt: "2025-09-11T18:00:00Z",
		},
		{
			ID:        "rpt-302",
			UserID:    "vp-002",
			Date:      "2025-09-11",
			Content:   "Infrastructure and platform teams delivering exceptional value. Cloud migration project not only ahead of schedule but also projecting 30% cost reduction. Modern containerization strategy proving highly effective. Security posture strengthening with systematic reviews. Very pleased with team execution.",
			Summary:   strPtr("Infrastructure teams exceeding targets with significant cost optimizations"),
			CreatedAt: "2025-09-11T18:15:00Z",
			UpdatedAt: "2025-09-11T18:15:00Z",
		},
		{
			ID:        "rpt-y001",
			UserID:    "eng-001",
			Date:      "2025-09-10",
			Content:   "Set up OAuth 2.0 development environment and completed initial integration with Google. Reviewed API documentation for GitHub OAuth. Identified 5 test scenarios for tomorrow's testing. Blocked on UX mockups for the login flow.",
			Summary:   strPtr("OAuth setup complete, testing scenarios identified"),
			CreatedAt: "2025-09-10T09:00:00Z",
			UpdatedAt: "2025-09-10T09:00:00Z",
		},
		{
			ID:        "rpt-y002",
			UserID:    "eng-007",
			Date:      "2025-09-10",
			Content:   "Completed API gateway configuration for microservices routing. Load tested with 1000 concurrent requests - performance looks good. Documented the new endpoint structure. Tomorrow will integrate with the authentication service that Alex is building.",
			Summary:   strPtr("API gateway configured and load tested successfully"),
			CreatedAt: "2025-09-10T14:30:00Z",
			UpdatedAt: "2025-09-10T14:30:00Z",
		},
		{
			ID:        "rpt-y003",
			UserID:    "mgr-001",
			Date:      "2025-09-10",
			Content:   "Team planning session went well. OAuth and MFA work planned for this week. Alex is unblocked on UX mockups. James has migration scripts ready for testing. Maya is working on middleware optimizations. Team velocity looking strong for sprint close.",
			Summary:   strPtr("Team planning complete, good velocity expected"),
			CreatedAt: "2025-09-10T16:45:00Z",
			UpdatedAt: "2025-09-10T16:45:00Z",
		},
	}
}

package services

// Services defined in this package:
// - AuthService: login, token refresh and password changes
// - StudentService: student records and credential provisioning
// - DepartmentService: department reference data
// - CourseService: course catalogue management
// - BatchService: batch instantiation and status gating
// - SettingsService: per-department allocation quota configuration
// - PreferenceService: eligibility rules, preference forms and submissions
// - AllocationService: the allocation run lifecycle (status, run, clear)
// - ReportService: allotment result views and CSV export

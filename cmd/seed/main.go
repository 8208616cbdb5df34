package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/educhain/educhain-server/internal/config"
	"github.com/educhain/educhain-server/internal/database"
	"github.com/educhain/educhain-server/internal/logger"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/repository"
	"github.com/educhain/educhain-server/internal/service"
)

// Seeds a demo institution: accounts for each role, a student registry,
// a faculty directory, courses and a grade book. Idempotent for unique
// keys; rerunning skips rows that already exist.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)

	authService := service.NewAuthService(cfg, rdb, userRepo)

	hash, err := authService.HashPassword("educhain123")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	fmt.Println("=== Seeding demo institution ===")

	// ─── Accounts ──────────────────────────────────────────────────────
	users := []model.User{
		{Username: "admin", FullName: "Priya Sharma", Email: "admin@educhain.edu", Role: model.RoleAdmin},
		{Username: "teacher", FullName: "Arjun Mehta", Email: "arjun.mehta@educhain.edu", Role: model.RoleTeacher, Department: "Computer Science"},
		{Username: "EDU-2024-1001", FullName: "Rahul Verma", Email: "rahul.verma@educhain.edu", Role: model.RoleStudent},
	}
	for i := range users {
		users[i].PasswordHash = hash
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			if err == repository.ErrDuplicateUsername {
				fmt.Printf("account %s already exists, skipping\n", users[i].Username)
				continue
			}
			log.Fatal().Err(err).Str("username", users[i].Username).Msg("Failed to seed account")
		}
	}

	// ─── Students ──────────────────────────────────────────────────────
	branches := []string{"Computer Science", "Electronics", "Mechanical", "Civil"}
	names := []string{
		"Rahul Verma", "Ananya Iyer", "Vikram Singh", "Sneha Patel", "Aditya Rao",
		"Kavya Nair", "Rohan Gupta", "Ishita Das", "Karan Malhotra", "Divya Menon",
		"Arnav Joshi", "Meera Pillai", "Siddharth Kulkarni", "Pooja Reddy", "Nikhil Bose",
		"Tanvi Desai", "Aryan Kapoor", "Shruti Agarwal", "Varun Chawla", "Neha Saxena",
	}
	seeded := 0
	for i, name := range names {
		parts := strings.SplitN(name, " ", 2)
		student := &model.Student{
			StudentID:      fmt.Sprintf("EDU-2024-%d", 1001+i),
			FirstName:      parts[0],
			LastName:       parts[1],
			Email:          strings.ToLower(parts[0]) + "." + strings.ToLower(parts[1]) + "@educhain.edu",
			PasswordHash:   hash,
			EnrollmentDate: time.Now().AddDate(0, -(i % 18), 0),
			Status:         model.StudentActive,
			GPA:            5.5 + float64(i%45)/10,
			Major:          branches[i%len(branches)],
			Semester:       1 + i%8,
			SuccessScore:   40 + (i*7)%60,
			RiskLevel:      model.RiskLow,
		}
		if student.SuccessScore < 50 {
			student.RiskLevel = model.RiskHigh
		} else if student.SuccessScore < 70 {
			student.RiskLevel = model.RiskMedium
		}
		if err := studentRepo.Create(ctx, student); err != nil {
			if err == repository.ErrDuplicateStudent {
				continue
			}
			log.Fatal().Err(err).Str("student_id", student.StudentID).Msg("Failed to seed student")
		}
		seeded++
	}
	fmt.Printf("students: %d seeded\n", seeded)

	// ─── Faculty ───────────────────────────────────────────────────────
	faculty := []model.Faculty{
		{EmployeeID: "FAC-001", FirstName: "Arjun", LastName: "Mehta", Email: "arjun.mehta@educhain.edu", Department: "Computer Science", Designation: "Associate Professor"},
		{EmployeeID: "FAC-002", FirstName: "Lakshmi", LastName: "Raman", Email: "lakshmi.raman@educhain.edu", Department: "Electronics", Designation: "Professor"},
		{EmployeeID: "FAC-003", FirstName: "Suresh", LastName: "Iyengar", Email: "suresh.iyengar@educhain.edu", Department: "Mechanical", Designation: "Assistant Professor"},
	}
	for i := range faculty {
		faculty[i].PasswordHash = hash
		faculty[i].Status = model.FacultyActive
		faculty[i].JoiningDate = time.Now().AddDate(-2-i, 0, 0)
		if err := facultyRepo.Create(ctx, &faculty[i]); err != nil && err != repository.ErrDuplicateFaculty {
			log.Fatal().Err(err).Str("employee_id", faculty[i].EmployeeID).Msg("Failed to seed faculty")
		}
	}
	fmt.Printf("faculty: %d rows\n", len(faculty))

	// ─── Courses ───────────────────────────────────────────────────────
	courses := []model.Course{
		{Code: "CS101", Name: "Data Structures", Department: "Computer Science", Credits: 4, Instructor: "Arjun Mehta", Capacity: 60, Semester: 3},
		{Code: "CS205", Name: "Operating Systems", Department: "Computer Science", Credits: 4, Instructor: "Arjun Mehta", Capacity: 50, Semester: 5},
		{Code: "EC110", Name: "Digital Circuits", Department: "Electronics", Credits: 3, Instructor: "Lakshmi Raman", Capacity: 55, Semester: 2},
		{Code: "ME140", Name: "Thermodynamics", Department: "Mechanical", Credits: 3, Instructor: "Suresh Iyengar", Capacity: 45, Semester: 4},
	}
	for i := range courses {
		if err := courseRepo.Create(ctx, &courses[i]); err != nil && err != repository.ErrDuplicateCourse {
			log.Fatal().Err(err).Str("code", courses[i].Code).Msg("Failed to seed course")
		}
	}
	fmt.Printf("courses: %d rows\n", len(courses))

	// ─── Grades ────────────────────────────────────────────────────────
	graded := 0
	for i := 0; i < len(names); i++ {
		studentID := fmt.Sprintf("EDU-2024-%d", 1001+i)
		course := courses[i%len(courses)]
		score := 35 + float64((i*13)%65)
		if _, err := gradeRepo.Upsert(ctx, studentID, course.Code, score, model.LetterGrade(score), course.Semester); err != nil {
			log.Fatal().Err(err).Str("student_id", studentID).Msg("Failed to seed grade")
		}
		graded++
	}
	fmt.Printf("grades: %d rows\n", graded)

	fmt.Println("=== Seed complete ===")
	fmt.Println("logins: admin / teacher / EDU-2024-1001 (password educhain123)")
}

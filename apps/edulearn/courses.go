package main

import (
	"context"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/certificate"
	"github.com/trezcool/edulearn/core/course"
)

func (cli *commandLine) listCourses(mine bool) error {
	ctx := context.Background()
	var (
		courses []course.Course
		err     error
	)
	if mine {
		courses, err = cli.api.Courses.Mine(ctx)
	} else {
		courses, err = cli.api.Courses.List(ctx)
	}
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		cli.printf("No courses\n")
		return nil
	}
	for _, c := range courses {
		cli.printf("%s  %s  (%s)\n", c.ID, core.DefaultString(c.Title, "Course"), core.DefaultString(c.Instructor, "Instructor"))
	}
	return nil
}

func (cli *commandLine) listCertificates() error {
	certs, err := cli.certs.List(context.Background(), cli.session.UserID())
	if err != nil {
		return err
	}
	if len(certs) == 0 {
		cli.printf("No certificates yet\n")
		return nil
	}
	for _, c := range certs {
		cli.printf("%s  %s  issued %s  code %s\n",
			c.CertificateID, c.CourseTitle, c.IssueDate.Format("2006-01-02", "-"), c.VerificationCode)
	}
	return nil
}

func (cli *commandLine) verify(id, code string) error {
	res, err := cli.certs.Verify(context.Background(), certificate.VerifyRequest{CertificateID: id, VerificationCode: code})
	if err != nil {
		return err
	}
	if !res.Valid {
		cli.printf("Invalid certificate: %s\n", core.DefaultString(res.Message, "not found"))
		return nil
	}
	cli.printf("Valid certificate %s\n  awarded to %s\n  for %s\n  issued %s\n",
		res.CertificateID, res.UserName, res.CourseTitle, res.IssueDate.Format("2006-01-02", "-"))
	return nil
}

package main

import (
	"context"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/user"
)

func (cli *commandLine) login(email, pwd string) error {
	res, err := cli.api.Auth.Login(context.Background(), user.Credentials{Email: email, Password: pwd})
	if err != nil {
		return err
	}
	if err := cli.session.Save(res.Token, res.User); err != nil {
		return err
	}
	cli.printf("Logged in as %s\n", res.User)
	return nil
}

type signupForm struct {
	role, name, email, password, confirm string
	subject, qualification, experience   string
}

func (cli *commandLine) signup(f signupForm) error {
	res, err := cli.api.Auth.Signup(context.Background(), user.NewUser{
		Role:            f.role,
		FullName:        f.name,
		Email:           f.email,
		Password:        f.password,
		PasswordConfirm: f.confirm,
		Subject:         f.subject,
		Qualification:   f.qualification,
		Experience:      f.experience,
	})
	if err != nil {
		return err
	}
	if err := cli.session.Save(res.Token, res.User); err != nil {
		return err
	}
	cli.printf("Welcome %s\n", res.User)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.session.Clear(); err != nil {
		return err
	}
	cli.printf("Logged out\n")
	return nil
}

func (cli *commandLine) whoami(refresh bool) error {
	if !cli.session.Authenticated() {
		return core.ErrAuthMissing
	}
	usr, ok := cli.session.User()
	if refresh || !ok {
		var err error
		if usr, err = cli.api.Users.Me(context.Background()); err != nil {
			return err
		}
		if err := cli.session.Save(cli.session.Token(), usr); err != nil {
			return err
		}
	}
	cli.printf("%s\n", usr)
	return nil
}

package database

import "testing"

func Test_createUserQuery(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		want     string
	}{
		{
			name:     "plain",
			user:     "ratiba",
			password: "secret",
			want:     `CREATE USER "ratiba" CREATEDB ENCRYPTED PASSWORD 'secret'`,
		},
		{
			name:     "quotes",
			user:     `rat"iba`,
			password: `it's'; DROP DATABASE ratiba; --`,
			want:     `CREATE USER "rat""iba" CREATEDB ENCRYPTED PASSWORD 'it''s''; DROP DATABASE ratiba; --'`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createUserQuery(tt.user, tt.password); got != tt.want {
				t.Errorf("createUserQuery() = %s; want %s", got, tt.want)
			}
		})
	}
}

func Test_createDatabaseQuery(t *testing.T) {
	tests := []struct {
		name   string
		dbName string
		owner  string
		want   string
	}{
		{name: "no owner", dbName: "ratiba", want: `CREATE DATABASE "ratiba"`},
		{name: "owner", dbName: "ratiba", owner: "ratiba", want: `CREATE DATABASE "ratiba" OWNER "ratiba"`},
		{name: "quotes", dbName: `x"; DROP DATABASE y; --`, owner: "o", want: `CREATE DATABASE "x""; DROP DATABASE y; --" OWNER "o"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createDatabaseQuery(tt.dbName, tt.owner); got != tt.want {
				t.Errorf("createDatabaseQuery() = %s; want %s", got, tt.want)
			}
		})
	}
}

package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/analysis --output domain/analysis --outpkg analysismock --filename repository_mock.go

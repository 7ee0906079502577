package mocks

//go:generate mockery --name SampleStore --srcpkg github.com/wattline/wattline/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ResourceRepository --srcpkg github.com/wattline/wattline/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

package global

import (
	"github.com/haierkeys/page-revision-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Page Revision Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}

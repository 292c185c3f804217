package member_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gymflow/internal/api/controllers"
	"gymflow/internal/repositories"
	"gymflow/internal/services"
)

var Module = fx.Provide(
	provideMemberRepo, provideMemberService, provideMemberController)

func provideMemberRepo(db *gorm.DB) repositories.MemberRepository {
	return repositories.NewMemberRepository(db)
}

func provideMemberService(memberRepo repositories.MemberRepository) services.MemberServiceInterface {
	return services.NewMemberService(memberRepo)
}

func provideMemberController(memberService services.MemberServiceInterface) *controllers.MemberController {
	return controllers.NewMemberController(memberService)
}

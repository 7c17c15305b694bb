package chatbot

import "strings"

// topic order matters: the first keyword found in the message wins, so
// broader topics must not shadow narrower ones placed before them.
var topics = []struct {
	keyword string
	reply   string
}{
	{"incorporation", `For business incorporation:
1. Choose entity type (LLC, C-Corp, S-Corp)
2. File articles of incorporation with your state
3. Get an EIN from the IRS
4. Draft bylaws and operating agreements
5. Register with state revenue department

Consult a lawyer for jurisdiction-specific requirements.`},

	{"ip", `Protect your intellectual property:
1. Trademarks for brand names and logos
2. Patents for inventions
3. Copyrights for creative works
4. Trade secrets for proprietary information

Register with the relevant authorities (USPTO/IPO). Early registration establishes priority dates.`},

	{"contracts", `Essential startup contracts:
1. Terms of Service (TOS)
2. Privacy Policy (GDPR/CCPA compliant)
3. Non-Disclosure Agreements (NDA)
4. Founder's Agreement
5. Employment Agreements
6. Service Level Agreements (SLA)

Always have contracts reviewed by legal counsel.`},

	{"compliance", `Maintain regulatory compliance:
1. Understand industry-specific regulations
2. Maintain proper business records
3. Follow data protection laws (GDPR, CCPA, DISHA)
4. File taxes on time
5. Adhere to employment laws
6. Get necessary licenses and permits

Document everything and conduct regular audits.`},

	{"employment", `Employment best practices:
1. Clear employment contracts
2. Non-compete and NDA clauses
3. Equity vesting schedules (4-year typical)
4. Workers' compensation insurance
5. Equal opportunity policies
6. Leave and benefits policies

Comply with local labor laws.`},

	{"funding", `Fundraising legal requirements:
1. Prepare SAFE agreements or convertible notes
2. Understand equity dilution
3. Comply with securities regulations
4. Maintain a clear cap table
5. Prepare investment agreements
6. Due diligence documentation

Have all documents reviewed before pitching.`},

	{"founder", `Founder agreements should cover:
- Equity distribution and vesting schedules
- Roles and responsibilities of each founder
- Decision-making authority and voting rights
- Dispute resolution process
- Exit clauses and buyout terms
- IP ownership assignment
- Non-compete and confidentiality clauses

Get this in writing before starting your company.`},

	{"tax", `Tax considerations for startups:
1. Register for GST (if applicable in India)
2. File income tax returns annually
3. Maintain proper accounting records
4. Understand deductible business expenses
5. Consider tax implications of equity
6. Plan for quarterly tax payments

Consult a CA for tax optimization strategies.`},

	{"privacy", `Privacy and data protection:
1. Comply with GDPR (EU users)
2. Comply with CCPA (California users)
3. Follow the DISHA Act (India)
4. Create a Privacy Policy
5. Implement data security measures
6. Get user consent for data collection

Document all data handling practices.`},
}

const helpReply = `I can help with:
- Incorporation
- IP/Patents/Trademarks
- Contracts
- Compliance
- Employment
- Funding
- Tax
- Privacy

What's your legal concern?`

const costReply = `Costs vary by jurisdiction:
- Incorporation: $100-500 (US), Rs 5,000-15,000 (India)
- Trademark: $300-400 (US), Rs 4,500-15,000 (India)
- Legal consultation: $150-400/hour

Check if your incubator offers legal support.`

const defaultReply = `I understand your question. Please ask about:
- Incorporation
- IP/Intellectual Property
- Contracts & Agreements
- Compliance & Regulations
- Employment Law
- Funding & Investor Docs
- Tax Planning
- Privacy & Data Protection

Or describe your specific legal issue.`

// Respond maps a free-form message to a canned legal answer by keyword.
func Respond(message string) string {
	lower := strings.ToLower(message)

	for _, topic := range topics {
		if strings.Contains(lower, topic.keyword) {
			return topic.reply
		}
	}

	if strings.Contains(lower, "help") || strings.Contains(lower, "advice") || strings.Contains(lower, "hello") {
		return helpReply
	}
	if strings.Contains(lower, "cost") || strings.Contains(lower, "price") {
		return costReply
	}

	return defaultReply
}
